// File path: internal/analysis/prompt.go
package analysis

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	summarySystemPrompt   = "You are an expert RFP analyst who creates comprehensive project summaries."
	breakdownSystemPrompt = "You are a project management expert specializing in software development task breakdown and estimation."

	// Breakdown prompts include at most this many characters of the document.
	breakdownDocumentCap = 3000
)

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(prev) || prev == '-' || prev == '/' {
			prev = r
			return unicode.ToUpper(r)
		}
		prev = r
		return r
	}, s)
}

var blockchainBackends = []string{"ethereum", "solana", "polygon", "hyperledger", "cardano", "polkadot"}
var blockchainStorage = []string{"ipfs", "arweave", "filecoin", "blockchain-native"}
var blockchainCloud = []string{"alchemy", "infura", "quicknode", "chainlink", "pinata"}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// IsBlockchainProject reports whether the configured stack implies a
// blockchain or Web3 delivery.
func IsBlockchainProject(tech TechnologyConfig) bool {
	return containsString(blockchainBackends, tech.Backend) ||
		containsString(blockchainStorage, tech.Database) ||
		containsString(blockchainCloud, tech.Cloud)
}

// SummaryPrompt builds the instruction that asks a provider for the
// six-section project summary.
func SummaryPrompt(documentText string, tech TechnologyConfig) string {
	appType := tech.ApplicationType
	if appType == "" {
		appType = "web"
	}
	techDescription := fmt.Sprintf("%s application using %s frontend, %s backend, %s database, deployed on %s cloud",
		titleCase(appType), tech.Frontend, tech.Backend, tech.Database, tech.Cloud)
	if IsBlockchainProject(tech) {
		techDescription += "\n\nBLOCKCHAIN PROJECT DETECTED: This is a blockchain/Web3 project requiring specialized considerations for smart contracts, decentralization, gas optimization, security audits, and regulatory compliance."
	}

	var b strings.Builder
	b.WriteString("Analyze the following RFP document and create a comprehensive RFP Summary.\n\n")
	fmt.Fprintf(&b, "PROJECT CONFIGURATION:\n- Application Type: %s\n- Frontend Technology: %s\n- Backend Technology: %s\n- Database: %s\n- Cloud Platform: %s\n\n",
		titleCase(appType), tech.Frontend, tech.Backend, tech.Database, tech.Cloud)
	fmt.Fprintf(&b, "PREFERRED TECHNOLOGY STACK: %s\n", techDescription)
	b.WriteString("Consider this technology preference when analyzing technical requirements and constraints.\n\n")
	fmt.Fprintf(&b, "RFP DOCUMENT CONTENT:\n%s\n\n", documentText)
	b.WriteString(`Please provide your analysis in EXACTLY the following format with these 6 sections:

**EXECUTIVE OVERVIEW:**
[Write 3-4 sentences describing the project's primary purpose, the requesting organization, and the strategic business objectives.]

**FUNCTIONAL REQUIREMENTS:**
[Write 3-4 sentences detailing the specific functional capabilities, features, user interactions, and core functionalities required.]

**TECHNICAL REQUIREMENTS:**
[Write 3-4 sentences outlining technical architecture, integration requirements, platform specifications, performance criteria, security requirements, and compliance standards.]

**OPERATIONAL REQUIREMENTS:**
[Write 3-4 sentences describing the operational context including target user base, expected usage patterns, deployment requirements, maintenance expectations, and support requirements.]

**BUSINESS CONTEXT & CONSTRAINTS:**
[Write 3-4 sentences explaining business drivers, timeline constraints, budget considerations, regulatory requirements, and organizational policies.]

**SUCCESS CRITERIA & DELIVERABLES:**
[Write 3-4 sentences defining measurable outcomes, acceptance criteria, key performance indicators, delivery milestones, and final deliverables.]

CRITICAL REQUIREMENTS:
- You MUST include ALL 6 section headers with ** formatting
- Each section must be 3-4 complete, well-structured sentences
- Do not combine sections or skip any headers
- Base your analysis on the actual document content provided
- Write in professional, executive-level language

Generate the summary now:
`)
	return b.String()
}

var frontendContexts = map[string]string{
	"react":        "React.js development requires: Component architecture, JSX, State management (Redux/Context), React hooks, React Router, Bundle optimization, Testing with Jest/React Testing Library.",
	"web3-react":   "Web3 React DApp development requires: Web3.js/Ethers.js integration, Wallet connectivity (MetaMask/WalletConnect), Smart contract interactions, Blockchain state management, Gas optimization, Transaction handling, Multi-chain support, IPFS file handling.",
	"ethers-react": "Ethers.js React DApp development requires: Ethers.js library, Provider setup, Signer management, Contract factory patterns, Event filtering, Transaction confirmation handling, Gas estimation, Network switching.",
	"angular":      "Angular development requires: TypeScript, Component/Service architecture, Angular CLI, RxJS observables, Angular Material, Reactive forms, Lazy loading modules, NgRx for state management, Karma/Jasmine testing.",
	"vue":          "Vue.js development requires: Vue CLI/Vite, Component composition, Vuex/Pinia state management, Vue Router, Single-file components, Testing with Vue Test Utils.",
	"flutter":      "Flutter development requires: Dart programming, Widget architecture, State management (Provider/Bloc/Riverpod), Flutter packages, Platform-specific integrations, Testing framework.",
	"react-native": "React Native development requires: JavaScript/TypeScript, Native modules, React Navigation, State management, Platform-specific code (iOS/Android), Testing with Detox.",
	"nextjs":       "Next.js development requires: Server-side rendering, Static generation, API routes, File-based routing, Image optimization, Performance optimization, Deployment on Vercel.",
}

var backendContexts = map[string]string{
	"python":   "Python backend development requires: FastAPI/Django/Flask framework, SQLAlchemy ORM, Pydantic models, Alembic migrations, Celery for async tasks, Testing with pytest.",
	"nodejs":   "Node.js backend development requires: Express.js/Fastify, TypeScript, ORM (Prisma/TypeORM/Sequelize), JWT authentication, Middleware setup, Testing with Jest/Mocha.",
	"java":     "Java backend development requires: Spring Boot, Spring Security, JPA/Hibernate, Maven/Gradle, JUnit testing, Docker containerization, RESTful API design.",
	"ethereum": "Ethereum development requires: Solidity smart contracts, Hardhat/Truffle development environment, OpenZeppelin libraries, Gas optimization, Security audits, Web3 integration.",
	"solana":   "Solana development requires: Rust programming, Anchor framework, Program development, Token/NFT standards, Solana Web3.js, Testing with Solana Test Validator.",
	"csharp":   ".NET development requires: ASP.NET Core, Entity Framework Core, Identity management, Dependency injection, xUnit testing.",
	"go":       "Go backend development requires: HTTP routing and middleware, database/sql or an ORM layer, context propagation, structured logging, table-driven testing.",
}

var databaseContexts = map[string]string{
	"postgresql":        "PostgreSQL database requires: Schema design, Indexing strategies, Query optimization, Migrations, Connection pooling, Backup/restore procedures, ACID compliance.",
	"mongodb":           "MongoDB database requires: Document schema design, Aggregation pipelines, Indexing, Sharding strategies, Replica sets, GridFS for file storage.",
	"mysql":             "MySQL database requires: Relational schema design, Stored procedures, Triggers, Indexing optimization, Replication setup, InnoDB engine configuration.",
	"ipfs":              "IPFS storage requires: Distributed file system setup, Content addressing, IPFS node configuration, Pinning strategies, Gateway setup.",
	"blockchain-native": "On-chain storage requires: Smart contract storage optimization, Gas cost considerations, Data compression techniques, Event logging strategies.",
}

var cloudContexts = map[string]string{
	"aws":       "AWS deployment requires: EC2/ECS/Lambda services, RDS/DynamoDB databases, S3 storage, CloudFront CDN, Route 53 DNS, IAM security, CloudFormation/CDK infrastructure.",
	"azure":     "Azure deployment requires: App Service/Container Instances, Azure SQL/Cosmos DB, Blob storage, Application Gateway, Azure AD authentication, ARM templates.",
	"gcp":       "Google Cloud deployment requires: Compute Engine/Cloud Run, Cloud SQL/Firestore, Cloud Storage, Load Balancer, Cloud IAM, Deployment Manager.",
	"vercel":    "Vercel deployment requires: Next.js optimization, Serverless functions, Edge runtime, Analytics setup, Domain configuration.",
	"alchemy":   "Alchemy blockchain infrastructure requires: Ethereum/Polygon node access, Enhanced APIs (NFT/Token APIs), Webhook notifications, Mempool monitoring, Gas optimization tools, Multi-chain support.",
	"infura":    "Infura blockchain infrastructure requires: Ethereum/IPFS node access, API key management, Rate limiting, Network switching, IPFS pinning services, Layer 2 support.",
	"quicknode": "QuickNode blockchain infrastructure requires: Multi-chain node access, GraphQL APIs, WebSocket streams, Analytics dashboard, Custom endpoints.",
	"pinata":    "Pinata IPFS infrastructure requires: IPFS pinning services, File upload APIs, Pin management, Gateway access, Metadata handling.",
}

const blockchainBanner = `BLOCKCHAIN-SPECIFIC REQUIREMENTS:
- Smart contract development and testing
- Wallet integration and Web3 connectivity
- Token/cryptocurrency handling
- Gas optimization and cost management
- Security audits and best practices
- Decentralized storage integration
- Oracle integration for external data
- Multi-signature wallet support`

// technologyContext assembles per-layer guidance for the configured stack.
// Layers without a known context entry contribute nothing.
func technologyContext(tech TechnologyConfig) string {
	var parts []string
	if ctx, ok := frontendContexts[tech.Frontend]; ok {
		parts = append(parts, fmt.Sprintf("FRONTEND (%s) REQUIREMENTS:\n%s", strings.ToUpper(tech.Frontend), ctx))
	}
	if ctx, ok := backendContexts[tech.Backend]; ok {
		parts = append(parts, fmt.Sprintf("BACKEND (%s) REQUIREMENTS:\n%s", strings.ToUpper(tech.Backend), ctx))
	}
	if ctx, ok := databaseContexts[tech.Database]; ok {
		parts = append(parts, fmt.Sprintf("DATABASE (%s) REQUIREMENTS:\n%s", strings.ToUpper(tech.Database), ctx))
	}
	if ctx, ok := cloudContexts[tech.Cloud]; ok {
		parts = append(parts, fmt.Sprintf("CLOUD PLATFORM (%s) REQUIREMENTS:\n%s", strings.ToUpper(tech.Cloud), ctx))
	}
	if containsString(blockchainBackends, tech.Backend) {
		parts = append(parts, blockchainBanner)
	}
	return strings.Join(parts, "\n\n")
}

// BreakdownPrompt builds the instruction that asks a provider for a
// module/task/subtask breakdown in the grammar the parser accepts.
func BreakdownPrompt(documentText, summary string, tech TechnologyConfig, complexityLevel string) string {
	if len(documentText) > breakdownDocumentCap {
		documentText = documentText[:breakdownDocumentCap] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a senior project manager and technical architect specializing in %s application development. Generate a comprehensive, technology-specific task breakdown for this RFP.\n\n", tech.ApplicationType)
	fmt.Fprintf(&b, "PROJECT TECHNOLOGY STACK:\n- Frontend: %s\n- Backend: %s\n- Database: %s\n- Cloud Platform: %s\n- Application Type: %s\n- Project Complexity: %s\n\n",
		tech.Frontend, tech.Backend, tech.Database, tech.Cloud, tech.ApplicationType, complexityLevel)
	if ctx := technologyContext(tech); ctx != "" {
		b.WriteString(ctx)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "RFP DOCUMENT CONTENT:\n%s\n\nRFP ANALYSIS SUMMARY:\n%s\n\n", documentText, summary)
	b.WriteString(`TASK BREAKDOWN REQUIREMENTS:
Generate a detailed task breakdown that covers ALL functionalities mentioned in the RFP. Create as many modules and tasks as needed to cover everything comprehensively.

CRITICAL REQUIREMENTS:
1. ALL tasks must be technology-specific using the exact stack mentioned above
2. Include ALL functionalities and features mentioned in the RFP document
3. Create detailed subtasks with specific technical implementation steps
4. Each task should have realistic hour estimates based on the technology complexity
5. Include technology-specific setup, configuration, and deployment tasks
6. Cover all aspects: frontend, backend, database, testing, security, deployment, monitoring

TASK FORMAT:
**Module X: [Module Name]**
Task X.Y: [Specific Technical Task Name]
- Description: [Detailed technical description]
- Estimated Hours: [Realistic hours]
- Priority: [High/Medium/Low based on project criticality]
- Subtasks:
  * [Subtask 1]: [Specific technical step] - [Hours] hours - [Priority]
  * [Subtask 2]: [Specific technical step] - [Hours] hours - [Priority]

`)
	fmt.Fprintf(&b, `MANDATORY MODULES (create more as needed):
1. Project Setup & Environment Configuration
2. %s Frontend Development
3. %s Backend Development
4. %s Database Implementation
5. Authentication & Security Implementation
6. API Development & Integration
7. User Interface & User Experience
8. Testing & Quality Assurance
9. %s Cloud Deployment
10. Monitoring & Maintenance

Generate the COMPLETE task breakdown covering ALL RFP requirements:
`, titleCase(tech.Frontend), titleCase(tech.Backend), titleCase(tech.Database), titleCase(tech.Cloud))
	return b.String()
}
