// File path: internal/analysis/techstack.go
package analysis

import "strings"

// keywordRule maps the first matching keyword group to a stack value.
type keywordRule struct {
	keywords []string
	value    string
}

// Blockchain entries sit first in each table so Web3 stacks win over the
// conventional technologies they often mention alongside.
var frontendRules = []keywordRule{
	{[]string{"web3", "dapp"}, "web3-react"},
	{[]string{"ethers"}, "ethers-react"},
	{[]string{"angular"}, "angular"},
	{[]string{"vue"}, "vue"},
	{[]string{"svelte"}, "svelte"},
	{[]string{"nextjs", "next.js"}, "nextjs"},
	{[]string{"flutter"}, "flutter"},
	{[]string{"react native", "react-native"}, "react-native"},
	{[]string{"react"}, "react"},
	{[]string{"ios"}, "native-ios"},
	{[]string{"android"}, "native-android"},
}

var backendRules = []keywordRule{
	{[]string{"ethereum", "solidity"}, "ethereum"},
	{[]string{"solana"}, "solana"},
	{[]string{"polygon"}, "polygon"},
	{[]string{"hyperledger"}, "hyperledger"},
	{[]string{"cardano"}, "cardano"},
	{[]string{"polkadot"}, "polkadot"},
	{[]string{"nodejs", "node.js"}, "nodejs"},
	{[]string{"java"}, "java"},
	{[]string{".net", "c#"}, "csharp"},
	{[]string{"php"}, "php"},
	{[]string{"ruby"}, "ruby"},
	{[]string{"golang"}, "go"},
}

var decentralizedStorageRules = []keywordRule{
	{[]string{"ipfs"}, "ipfs"},
	{[]string{"arweave"}, "arweave"},
	{[]string{"filecoin"}, "filecoin"},
}

var databaseRules = []keywordRule{
	{[]string{"mongodb"}, "mongodb"},
	{[]string{"mysql"}, "mysql"},
	{[]string{"sql server"}, "sql-server"},
	{[]string{"oracle"}, "oracle"},
	{[]string{"redis"}, "redis"},
	{[]string{"dynamodb"}, "dynamodb"},
}

var cloudRules = []keywordRule{
	{[]string{"alchemy"}, "alchemy"},
	{[]string{"infura"}, "infura"},
	{[]string{"quicknode"}, "quicknode"},
	{[]string{"chainlink"}, "chainlink"},
	{[]string{"pinata"}, "pinata"},
	{[]string{"azure"}, "azure"},
	{[]string{"gcp", "google cloud"}, "gcp"},
	{[]string{"digitalocean"}, "digitalocean"},
	{[]string{"heroku"}, "heroku"},
	{[]string{"vercel"}, "vercel"},
}

func matchRules(rules []keywordRule, text string) (string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.value, true
			}
		}
	}
	return "", false
}

func applyRules(rules []keywordRule, text string, current *string) {
	if value, ok := matchRules(rules, text); ok {
		*current = value
	}
}

// TechStackFromAnalysis recovers a technology configuration from the
// free-form technology_stack text stored on an analysis. Unrecognized or
// empty text yields the platform defaults.
func TechStackFromAnalysis(rec Analysis) TechnologyConfig {
	tech := DefaultTechnologyConfig()
	text := strings.ToLower(rec.TechnologyStack)
	if text == "" {
		return tech
	}

	applyRules(frontendRules, text, &tech.Frontend)
	// A plain "react" hit is promoted to web3-react when blockchain
	// keywords appear elsewhere in the text.
	if tech.Frontend == "react" {
		for _, kw := range []string{"ethereum", "blockchain", "web3", "smart contract", "metamask"} {
			if strings.Contains(text, kw) {
				tech.Frontend = "web3-react"
				break
			}
		}
	}

	applyRules(backendRules, text, &tech.Backend)

	if value, ok := matchRules(decentralizedStorageRules, text); ok {
		tech.Database = value
	} else if strings.Contains(text, "on-chain") || (strings.Contains(text, "blockchain") && strings.Contains(text, "storage")) {
		tech.Database = "blockchain-native"
	} else {
		applyRules(databaseRules, text, &tech.Database)
	}

	applyRules(cloudRules, text, &tech.Cloud)

	switch {
	case strings.Contains(text, "mobile") && strings.Contains(text, "web"):
		tech.ApplicationType = "both"
	case strings.Contains(text, "mobile"):
		tech.ApplicationType = "mobile"
	case strings.Contains(text, "desktop"):
		tech.ApplicationType = "desktop"
	case strings.Contains(text, "dapp") || strings.Contains(text, "web3"):
		tech.ApplicationType = "dapp"
	}
	return tech
}
