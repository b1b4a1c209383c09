// File path: internal/analysis/fallback.go
package analysis

import (
	"fmt"
	"strings"
)

// Project type detection for the offline summary. Order matters: the
// first bucket with a keyword hit wins.
var projectTypeIndicators = []struct {
	label    string
	keywords []string
}{
	{"Web Application", []string{"web", "website", "portal", "dashboard", "online"}},
	{"Mobile Application", []string{"mobile", "app", "ios", "android", "smartphone"}},
	{"Enterprise System", []string{"enterprise", "erp", "crm", "system integration"}},
	{"E-commerce Platform", []string{"ecommerce", "e-commerce", "online store", "shopping"}},
	{"Data Platform", []string{"data", "analytics", "reporting", "business intelligence"}},
	{"Custom Software", []string{"software", "application", "system", "platform"}},
}

var featureIndicators = []struct {
	label    string
	keywords []string
}{
	{"user authentication", []string{"login", "auth", "user account", "registration"}},
	{"database management", []string{"database", "data storage", "data management"}},
	{"reporting and analytics", []string{"report", "analytics", "dashboard", "metrics"}},
	{"API integration", []string{"api", "integration", "web service", "third-party"}},
	{"mobile access", []string{"mobile", "smartphone", "tablet", "app"}},
	{"payment processing", []string{"payment", "billing", "transaction", "checkout"}},
	{"notification system", []string{"notification", "email", "alert", "messaging"}},
	{"search functionality", []string{"search", "filter", "query", "find"}},
	{"file management", []string{"upload", "download", "file", "document"}},
	{"security features", []string{"security", "encryption", "secure", "protection"}},
}

func detectProjectType(textLower string) string {
	for _, bucket := range projectTypeIndicators {
		for _, kw := range bucket.keywords {
			if strings.Contains(textLower, kw) {
				return bucket.label
			}
		}
	}
	return "Custom Software Solution"
}

func detectFeatures(textLower string) []string {
	var features []string
	for _, bucket := range featureIndicators {
		for _, kw := range bucket.keywords {
			if strings.Contains(textLower, kw) {
				features = append(features, bucket.label)
				break
			}
		}
	}
	return features
}

// complexityByFeatures scores the document by word count and detected
// feature count into one of standard, medium or high.
func complexityByFeatures(wordCount, featureCount int) string {
	score := 0
	switch {
	case wordCount > 2000:
		score += 3
	case wordCount > 1000:
		score += 2
	case wordCount > 500:
		score++
	}
	switch {
	case featureCount > 8:
		score += 3
	case featureCount > 5:
		score += 2
	case featureCount > 3:
		score++
	}
	switch {
	case score >= 5:
		return "high"
	case score >= 3:
		return "medium"
	default:
		return "standard"
	}
}

// FallbackSummary produces a deterministic six-section summary from
// document statistics, used when every provider is unavailable.
func FallbackSummary(documentText string) string {
	textLower := strings.ToLower(documentText)
	wordCount := len(strings.Fields(documentText))
	projectType := detectProjectType(textLower)
	features := detectFeatures(textLower)
	complexity := complexityByFeatures(wordCount, len(features))

	featureText := "user management, data processing, and reporting"
	if len(features) > 0 {
		top := features
		if len(top) > 3 {
			top = top[:3]
		}
		featureText = strings.Join(top, ", ")
	}

	return fmt.Sprintf(`**EXECUTIVE OVERVIEW:**
This RFP outlines a comprehensive %s initiative designed to address critical organizational needs and strategic business objectives. The requesting organization seeks to implement a modern solution that will significantly enhance operational efficiency, improve service delivery, and support digital transformation goals. The project represents a strategic investment in technology infrastructure that will enable scalable growth and competitive advantage. Success will drive measurable improvements in organizational performance, user satisfaction, and operational metrics.

**FUNCTIONAL REQUIREMENTS:**
The solution must provide comprehensive functionality supporting core business processes including %s. Key capabilities include intuitive user interfaces, automated workflow management, real-time data processing, and comprehensive reporting and analytics. The system should offer role-based access controls, multi-user collaboration features, and seamless integration with existing business processes. Mobile accessibility and responsive design across multiple platforms are essential for supporting diverse user needs and usage patterns.

**TECHNICAL REQUIREMENTS:**
The technical architecture must support %s complexity operations with modern, scalable technology standards and cloud-native infrastructure. Integration capabilities with existing enterprise systems, third-party services, and external APIs are required to ensure seamless data flow and operational continuity. Performance specifications include high availability, robust security protocols, data encryption, and compliance with industry standards and regulations. The solution should leverage modern development frameworks with appropriate backup, disaster recovery, and monitoring capabilities.

**OPERATIONAL REQUIREMENTS:**
The system will serve multiple user groups including end-users, administrators, and stakeholders with varying access levels and operational responsibilities. Deployment must accommodate existing organizational infrastructure while minimizing disruption to current operations and maintaining business continuity. Daily operations require intuitive interfaces, efficient workflows, and responsive support systems to ensure optimal user adoption and satisfaction. Ongoing maintenance includes regular updates, security patches, performance monitoring, and comprehensive user support and training programs.

**BUSINESS CONTEXT & CONSTRAINTS:**
This initiative operates within specific organizational budget parameters and timeline constraints established by strategic business priorities and competitive market pressures. Regulatory compliance requirements, data privacy standards, and governance policies must be maintained throughout implementation and ongoing operations. The project aligns with broader digital transformation initiatives and long-term strategic business objectives focused on growth and operational excellence. Resource allocation, stakeholder coordination, and change management will be critical success factors requiring executive sponsorship and cross-functional collaboration.

**SUCCESS CRITERIA & DELIVERABLES:**
Project success will be measured through specific performance metrics including user adoption rates, operational efficiency improvements, and system performance benchmarks. Key deliverables include fully functional production system, comprehensive technical documentation, user training materials, and ongoing support arrangements with defined service level agreements. Acceptance criteria focus on meeting all functional requirements, achieving performance targets, passing security audits, and maintaining user satisfaction scores. Final delivery includes production deployment with validated performance, comprehensive testing results, and documented compliance with all specified requirements and standards.`,
		strings.ToLower(projectType), featureText, complexity)
}

// Canonical toolchains used to flavor the templated fallback breakdown.
var fallbackFrontendConfigs = map[string][2]string{
	"react":        {"React.js", "Create React App, React Router, Redux/Context API"},
	"angular":      {"Angular", "Angular CLI, TypeScript, Angular Material, RxJS, NgRx"},
	"vue":          {"Vue.js", "Vue CLI, Vuex/Pinia, Vue Router"},
	"flutter":      {"Flutter", "Flutter SDK, Dart, Provider/Bloc, Material Design"},
	"react-native": {"React Native", "React Native CLI, Metro bundler, React Navigation"},
	"nextjs":       {"Next.js", "Next.js framework, Static generation, Server-side rendering"},
}

var fallbackBackendConfigs = map[string][2]string{
	"python":   {"Python/FastAPI", "FastAPI framework, Pydantic, SQLAlchemy, Alembic, pytest"},
	"nodejs":   {"Node.js/Express", "Express.js, TypeScript, Prisma/TypeORM, Jest"},
	"java":     {"Java/Spring", "Spring Boot, Spring Security, JPA/Hibernate, Maven"},
	"ethereum": {"Ethereum/Solidity", "Hardhat, OpenZeppelin, Web3.js, Smart contracts"},
	"solana":   {"Solana/Rust", "Anchor framework, Solana CLI, Token programs"},
	"csharp":   {".NET Core", "ASP.NET Core, Entity Framework, Identity"},
}

var fallbackDatabaseConfigs = map[string][2]string{
	"postgresql":        {"PostgreSQL", "Relational database, ACID compliance, Advanced querying"},
	"mongodb":           {"MongoDB", "Document database, Aggregation pipelines, GridFS"},
	"mysql":             {"MySQL", "Relational database, Stored procedures, Triggers"},
	"ipfs":              {"IPFS", "Distributed storage, Content addressing, Pinning"},
	"blockchain-native": {"Blockchain Storage", "On-chain storage, Gas optimization"},
}

func fallbackConfig(configs map[string][2]string, key, fallbackKey string) (string, string) {
	if cfg, ok := configs[key]; ok {
		return cfg[0], cfg[1]
	}
	cfg := configs[fallbackKey]
	return cfg[0], cfg[1]
}

// FallbackBreakdown produces the canonical technology-templated breakdown
// used when provider output is unavailable or too sparse. The result
// always satisfies the default acceptance thresholds and the parser
// grammar.
func FallbackBreakdown(tech TechnologyConfig) string {
	frontendName, frontendTools := fallbackConfig(fallbackFrontendConfigs, tech.Frontend, "react")
	backendName, backendTools := fallbackConfig(fallbackBackendConfigs, tech.Backend, "python")
	databaseName, _ := fallbackConfig(fallbackDatabaseConfigs, tech.Database, "postgresql")
	cloud := strings.ToUpper(tech.Cloud)
	if cloud == "" {
		cloud = "AWS"
	}
	frontendFirstTool := strings.TrimSpace(strings.Split(frontendTools, ",")[0])
	backendFirstTool := strings.TrimSpace(strings.Split(backendTools, ",")[0])

	return fmt.Sprintf(`**TASK BREAKDOWN:**

**Module 1: Project Setup & %[1]s Environment Configuration**
Task 1.1: %[1]s Development Environment Setup
- Description: Set up %[1]s development environment, package management, and project structure with technology-specific configurations
- Estimated Hours: 16
- Priority: High
- Subtasks:
  * Initialize %[1]s project with %[2]s: Bootstrap project skeleton and dependencies - 4 hours - High
  * Package management: Configure dependency resolution and lockfiles - 4 hours - High
  * Development tooling: Set up IDE configuration and helper scripts - 4 hours - Medium
  * Configuration management: Wire environment variables and settings - 4 hours - Medium

Task 1.2: %[3]s Frontend Environment Setup
- Description: Configure %[3]s development environment with build tools, linting, and testing framework
- Estimated Hours: 14
- Priority: High
- Subtasks:
  * Initialize %[3]s project with %[4]s: Bootstrap the frontend workspace - 4 hours - High
  * Build system: Configure bundling and build tooling - 4 hours - High
  * Code quality: Set up linting and formatting tools - 3 hours - Medium
  * Test framework: Configure testing and development scripts - 3 hours - Medium

Task 1.3: %[5]s Database Environment Setup
- Description: Configure %[5]s database environment, connection pooling, and migration system
- Estimated Hours: 12
- Priority: High
- Subtasks:
  * Database server: Install and configure %[5]s - 4 hours - High
  * Connection pooling: Set up pooling and tuning - 4 hours - Medium
  * Migrations: Configure migration system and version control - 4 hours - Medium

Task 1.4: %[6]s Cloud Infrastructure Planning
- Description: Design %[6]s cloud infrastructure, resource planning, and deployment strategy
- Estimated Hours: 18
- Priority: Medium
- Subtasks:
  * Account setup: %[6]s account setup and resource planning - 6 hours - Medium
  * Infrastructure as Code: Author IaC configuration - 8 hours - Medium
  * CI/CD pipeline: Design and implement delivery pipeline - 4 hours - Medium

**Module 2: Authentication & Security Implementation**
Task 2.1: User Authentication System
- Description: Implement secure user registration, login, password management, and session handling mechanisms
- Estimated Hours: 24
- Priority: High
- Subtasks:
  * Registration: User registration and email verification system - 8 hours - High
  * Login: Secure login and password management - 8 hours - High
  * Sessions: Session management and token based authentication - 8 hours - High

Task 2.2: Authorization & Access Control
- Description: Implement role-based access control, permissions system, and secure API endpoints
- Estimated Hours: 18
- Priority: High
- Subtasks:
  * Roles: Role based access control implementation - 8 hours - High
  * Permissions: Permission system and middleware development - 6 hours - High
  * Endpoint protection: API security and endpoint protection - 4 hours - Medium

Task 2.3: Security Hardening
- Description: Implement security best practices, encryption, input validation, and vulnerability protection
- Estimated Hours: 16
- Priority: Medium
- Subtasks:
  * Encryption: Data encryption and secure communication protocols - 6 hours - High
  * Validation: Input validation and sanitization systems - 5 hours - Medium
  * Assessment: Security testing and vulnerability assessment - 5 hours - Medium

**Module 3: Database Design & Implementation**
Task 3.1: Database Schema Development
- Description: Design and implement comprehensive database schema with relationships, indexes, and optimization
- Estimated Hours: 20
- Priority: High
- Subtasks:
  * Modeling: Entity relationship design and normalization - 8 hours - High
  * Schema: Schema implementation and migration scripts - 8 hours - High
  * Indexing: Index optimization and performance tuning - 4 hours - Medium

Task 3.2: Data Access Layer
- Description: Implement data access patterns, ORM configuration, and database abstraction layers
- Estimated Hours: 16
- Priority: High
- Subtasks:
  * ORM setup: ORM and model configuration - 6 hours - High
  * Repositories: Repository pattern and data access implementation - 6 hours - High
  * Pooling: Connection pooling and optimization - 4 hours - Medium

Task 3.3: Data Migration & Backup
- Description: Implement data migration tools, backup strategies, and database maintenance procedures
- Estimated Hours: 12
- Priority: Medium
- Subtasks:
  * Migration scripts: Data migration scripts and version control - 5 hours - Medium
  * Backups: Automated backup and recovery procedures - 4 hours - Medium
  * Maintenance: Database monitoring and maintenance tools - 3 hours - Low

**Module 4: Frontend User Interface Development**
Task 4.1: Core UI Components
- Description: Develop reusable UI components, design system, and responsive layout framework
- Estimated Hours: 28
- Priority: High
- Subtasks:
  * Component library: Design system development - 10 hours - High
  * Layout: Responsive layout and grid system implementation - 8 hours - High
  * Navigation: Navigation and routing system development - 10 hours - High

Task 4.2: User Interface Implementation
- Description: Implement main application screens, forms, and interactive elements with user experience optimization
- Estimated Hours: 32
- Priority: High
- Subtasks:
  * Dashboard: Main dashboard and navigation interfaces - 12 hours - High
  * Forms: Forms and data input interfaces - 10 hours - High
  * Interactivity: Interactive features and user feedback systems - 10 hours - Medium

Task 4.3: Frontend State Management
- Description: Implement state management, data synchronization, and client-side caching mechanisms
- Estimated Hours: 20
- Priority: Medium
- Subtasks:
  * Global state: Global state management implementation - 8 hours - High
  * Sync: Data synchronization and live updates - 8 hours - Medium
  * Caching: Client side caching and optimization - 4 hours - Medium

**Module 5: Backend API Development**
Task 5.1: Core API Framework
- Description: Develop RESTful API structure, middleware, error handling, and documentation framework
- Estimated Hours: 24
- Priority: High
- Subtasks:
  * Framework: API framework setup and routing configuration - 8 hours - High
  * Middleware: Middleware development and error handling - 8 hours - High
  * Documentation: API documentation and testing framework - 8 hours - Medium

Task 5.2: Business Logic Implementation
- Description: Implement core business logic, data validation, and service layer architecture
- Estimated Hours: 36
- Priority: High
- Subtasks:
  * Services: Core business logic and service implementation - 16 hours - High
  * Validation: Data validation and business rule enforcement - 10 hours - High
  * Architecture: Service layer architecture and dependency injection - 10 hours - Medium

Task 5.3: API Integration & Third-party Services
- Description: Integrate external APIs, payment processing, and third-party service connections
- Estimated Hours: 20
- Priority: Medium
- Subtasks:
  * External APIs: External API integration and data mapping - 8 hours - Medium
  * Payments: Payment processing and financial transaction handling - 8 hours - High
  * Auth handling: Third party service authentication and error handling - 4 hours - Medium

**Module 6: Integration & Data Management**
Task 6.1: System Integration
- Description: Implement frontend-backend integration, live communication, and data synchronization
- Estimated Hours: 18
- Priority: High
- Subtasks:
  * API wiring: Frontend to backend API integration - 8 hours - High
  * WebSockets: Live communication and WebSocket implementation - 6 hours - Medium
  * Conflict handling: Data synchronization and conflict resolution - 4 hours - Medium

Task 6.2: Data Processing & Analytics
- Description: Implement data processing pipelines, reporting systems, and analytics functionality
- Estimated Hours: 24
- Priority: Medium
- Subtasks:
  * Pipelines: Data processing and transformation pipelines - 10 hours - Medium
  * Reporting: Reporting system and dashboard analytics - 10 hours - Medium
  * Insights: Performance monitoring and data insights - 4 hours - Low

Task 6.3: File Management & Storage
- Description: Implement file upload, storage management, and content delivery systems
- Estimated Hours: 16
- Priority: Medium
- Subtasks:
  * Uploads: File upload and validation systems - 6 hours - Medium
  * Storage: Cloud storage integration and management - 6 hours - Medium
  * Delivery: Content delivery and optimization - 4 hours - Low

**Module 7: Testing & Quality Assurance**
Task 7.1: Automated Testing Implementation
- Description: Develop comprehensive testing suite including unit tests, integration tests, and end-to-end testing
- Estimated Hours: 28
- Priority: High
- Subtasks:
  * Unit tests: Unit testing framework and test case development - 12 hours - High
  * Integration tests: Integration testing and API test automation - 10 hours - High
  * End-to-end: Full journey testing and user validation - 6 hours - Medium

Task 7.2: Code Quality & Performance Testing
- Description: Implement code quality checks, performance testing, and optimization procedures
- Estimated Hours: 20
- Priority: Medium
- Subtasks:
  * Linting: Code quality analysis and linting automation - 6 hours - Medium
  * Load tests: Performance testing and load testing implementation - 10 hours - Medium
  * Scanning: Security testing and vulnerability scanning - 4 hours - High

Task 7.3: Bug Tracking & Quality Assurance
- Description: Establish bug tracking, quality assurance processes, and user acceptance testing procedures
- Estimated Hours: 16
- Priority: Medium
- Subtasks:
  * Issue tracking: Bug tracking and issue management system setup - 5 hours - Medium
  * QA process: Quality assurance process and testing protocols - 6 hours - Medium
  * Acceptance: User acceptance testing and feedback integration - 5 hours - Low

**Module 8: Deployment & Production Setup**
Task 8.1: Production Environment Setup
- Description: Configure production infrastructure, deployment pipelines, and monitoring systems
- Estimated Hours: 24
- Priority: High
- Subtasks:
  * Servers: Production server configuration and optimization - 10 hours - High
  * Automation: Deployment automation and CI/CD pipeline setup - 8 hours - High
  * Monitoring: Monitoring and logging system implementation - 6 hours - Medium

Task 8.2: Go-Live & Launch Preparation
- Description: Execute production deployment, perform final testing, and prepare launch procedures
- Estimated Hours: 16
- Priority: High
- Subtasks:
  * Deployment: Production deployment and system validation - 8 hours - High
  * Verification: Final testing and performance verification - 5 hours - High
  * Rollback: Launch preparation and rollback procedures - 3 hours - Medium

Task 8.3: Post-Launch Support & Maintenance
- Description: Establish maintenance procedures, support systems, and continuous improvement processes
- Estimated Hours: 12
- Priority: Low
- Subtasks:
  * Documentation: Support documentation and maintenance procedures - 4 hours - Medium
  * Optimization: Performance monitoring and optimization setup - 4 hours - Medium
  * Feedback: Continuous improvement and feedback systems - 4 hours - Low`,
		backendName, backendFirstTool, frontendName, frontendFirstTool, databaseName, cloud)
}
