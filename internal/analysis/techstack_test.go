// File path: internal/analysis/techstack_test.go
package analysis

import "testing"

func TestTechStackFromAnalysis(t *testing.T) {
	cases := []struct {
		name string
		text string
		want TechnologyConfig
	}{
		{
			name: "empty text yields defaults",
			text: "",
			want: DefaultTechnologyConfig(),
		},
		{
			name: "conventional stack",
			text: "Web app: angular + java + mysql on azure",
			want: TechnologyConfig{Frontend: "angular", Backend: "java", Database: "mysql", Cloud: "azure", ApplicationType: "web"},
		},
		{
			name: "blockchain stack wins over conventional mentions",
			text: "DApp with react frontend, ethereum smart contracts, ipfs storage via infura",
			want: TechnologyConfig{Frontend: "web3-react", Backend: "ethereum", Database: "ipfs", Cloud: "infura", ApplicationType: "dapp"},
		},
		{
			name: "react promoted to web3 by blockchain keywords",
			text: "react frontend with metamask wallet support",
			want: TechnologyConfig{Frontend: "web3-react", Backend: "python", Database: "postgresql", Cloud: "aws", ApplicationType: "web"},
		},
		{
			name: "mobile plus web yields both",
			text: "flutter mobile and web dashboard, nodejs backend, mongodb, gcp",
			want: TechnologyConfig{Frontend: "flutter", Backend: "nodejs", Database: "mongodb", Cloud: "gcp", ApplicationType: "both"},
		},
		{
			name: "on-chain storage",
			text: "solana programs with on-chain storage",
			want: TechnologyConfig{Frontend: "react", Backend: "solana", Database: "blockchain-native", Cloud: "aws", ApplicationType: "web"},
		},
	}
	for _, tc := range cases {
		got := TechStackFromAnalysis(Analysis{TechnologyStack: tc.text})
		if got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}
