package roster

import "github.com/ShayCichocki/labelcrew/pkg/models"

// Credential keys referenced by the role definitions. A label config must
// provide every key required by the agents it generates.
const (
	CredentialTelegram    = "telegram"
	CredentialDistributor = "distributor"
	CredentialDatabase    = "postgresql"
	CredentialStorage     = "storage"
	CredentialHosting     = "hosting"
	CredentialGitHub      = "github"
)

var definitions = []models.AgentDefinition{
	{
		ID:          models.RoleDirector,
		Name:        "NEXUS",
		Codename:    "DIRECTOR",
		RoleTitle:   "AI Director",
		Tier:        models.TierLead,
		Portability: models.PortabilityUniversal,
		Status:      models.StatusActive,
		Model:       "opus",
		Avatar:      "🧠",
		Specialty:   "Coordinates every agent, takes strategic decisions, talks to artists and partners",
		Description: "Leads the team of five specialist agents, routes incoming requests to the right specialist and keeps the label-wide picture of royalties, contracts and releases.",
		Tools:       []string{"telegram-bot-api", "openclaw-gateway", "postgresql", "github-api"},
		Memory: []string{
			"Full picture of the label and its roster",
			"Current contracts and financial state",
			"Priorities for the current quarter",
			"History of decisions and changes",
		},
		Commands: []models.Command{
			{Command: "/help", Description: "Help for all commands"},
			{Command: "/status", Description: "Overall label status", AdminOnly: true},
			{Command: "/team", Description: "Status of the AI team", AdminOnly: true},
		},
		Credentials: []string{CredentialTelegram},
	},
	{
		ID:          models.RoleRoyalty,
		Name:        "Rita",
		Codename:    "ROYALTY-ENGINE",
		RoleTitle:   "Royalty Manager",
		Tier:        models.TierSpecialist,
		Portability: models.PortabilityDistributor,
		Status:      models.StatusActive,
		Model:       "opus",
		Avatar:      "💰",
		Specialty:   "Quarterly payout calculation, PDF and XLSX statements, advances and splits",
		Description: "Calculates royalties for every artist from the distributor's statements, applies individual splits, recoups advances and produces per-artist reports.",
		Tools:       []string{"distributor-api", "postgresql", "royalty-calculator", "report-generator"},
		Memory: []string{
			"Splits of every artist with change history",
			"Open advances and balances per artist",
			"Distributor statements by quarter",
			"Collaboration mappings between artists",
		},
		Commands: []models.Command{
			{Command: "/report", Description: "Quarterly PDF report for an artist"},
			{Command: "/royalty Q4 2025", Description: "Calculate payouts for a quarter", AdminOnly: true},
			{Command: "/report_xlsx Q4 2025", Description: "Excel report", AdminOnly: true},
			{Command: "/advances", Description: "Open advances", AdminOnly: true},
			{Command: "/fetch", Description: "Fetch statements from the distributor", AdminOnly: true},
		},
		Credentials: []string{CredentialDistributor, CredentialDatabase},
	},
	{
		ID:          models.RoleContracts,
		Name:        "Max",
		Codename:    "CONTRACT-MGR",
		RoleTitle:   "Contract Manager",
		Tier:        models.TierSpecialist,
		Portability: models.PortabilityLabel,
		Status:      models.StatusBuilding,
		Model:       "opus",
		Avatar:      "📋",
		Specialty:   "Contract records, split control, expiry monitoring, contract file links",
		Description: "Keeps the register of every artist agreement, parses contract files from storage, tracks expiry dates and checks that recorded splits match the signed terms.",
		Tools:       []string{"contract-storage", "pdf-parser", "postgresql", "telegram-notifications"},
		Memory: []string{
			"Register of all contracts with linked files",
			"Splits by source document",
			"Artists without a confirmed split",
			"Contract expiry dates",
		},
		Commands: []models.Command{
			{Command: "/contracts", Description: "Contract summary", AdminOnly: true},
			{Command: "/contracts ARTIST", Description: "Contracts of an artist", AdminOnly: true},
			{Command: "/split ARTIST", Description: "Split history", AdminOnly: true},
			{Command: "/split ARTIST 80", Description: "Set a split", AdminOnly: true},
		},
		Credentials: []string{CredentialStorage, CredentialDatabase},
	},
	{
		ID:          models.RoleReleases,
		Name:        "Lena",
		Codename:    "RELEASE-PIPE",
		RoleTitle:   "Release Manager",
		Tier:        models.TierSpecialist,
		Portability: models.PortabilityDistributor,
		Status:      models.StatusPlanned,
		Model:       "sonnet",
		Avatar:      "🎵",
		Specialty:   "Release planning, delivery to stores, status monitoring",
		Description: "Runs the release pipeline through the distributor: plans release dates, prepares metadata and follows delivery status on every store.",
		Tools:       []string{"distributor-portal", "release-calendar", "telegram-notifications"},
		Memory: []string{
			"Release catalog of the label",
			"Release schedule for the next month",
			"Delivery status per store",
			"Distributor metadata requirements",
		},
		Commands: []models.Command{
			{Command: "/releases", Description: "List releases"},
			{Command: "/release_status", Description: "Store delivery status", AdminOnly: true},
			{Command: "/new_release", Description: "Create a release", AdminOnly: true},
		},
		Credentials: []string{CredentialDistributor},
	},
	{
		ID:          models.RoleAnalytics,
		Name:        "Denis",
		Codename:    "ANALYTICS-AI",
		RoleTitle:   "Analyst",
		Tier:        models.TierSpecialist,
		Portability: models.PortabilityUniversal,
		Status:      models.StatusPlanned,
		Model:       "sonnet",
		Avatar:      "📊",
		Specialty:   "Streams, revenue and trend analysis, quarter-over-quarter comparisons, promotion advice",
		Description: "Analyses streams, revenue, geography and platforms, spots trends, compares quarters and recommends where to invest in promotion.",
		Tools:       []string{"distributor-olap", "postgresql", "charting"},
		Memory: []string{
			"Historical data for every quarter",
			"Trends per artist",
			"Platform benchmarks",
			"Results of past promo campaigns",
		},
		Commands: []models.Command{
			{Command: "/stats", Description: "Overall statistics"},
			{Command: "/balance", Description: "Label balance", AdminOnly: true},
			{Command: "/trends", Description: "Artist trends", AdminOnly: true},
			{Command: "/digest", Description: "Weekly digest", AdminOnly: true},
		},
		Credentials: []string{CredentialDistributor, CredentialDatabase},
	},
	{
		ID:          models.RoleDevOps,
		Name:        "Sasha",
		Codename:    "DEVOPS-BOT",
		RoleTitle:   "DevOps Engineer",
		Tier:        models.TierSpecialist,
		Portability: models.PortabilityUniversal,
		Status:      models.StatusBuilding,
		Model:       "sonnet",
		Avatar:      "⚙️",
		Specialty:   "CI/CD, containers, deployment, monitoring, backups, health checks",
		Description: "Keeps the label's infrastructure running: container builds, deployments, CI pipelines, monitoring and database backups.",
		Tools:       []string{"docker", "hosting-api", "github-actions", "postgresql"},
		Memory: []string{
			"Hosting configuration and environment",
			"Container images and dependencies",
			"Plan limits of the hosting provider",
			"Deployment and error logs",
		},
		Commands: []models.Command{
			{Command: "/deploy", Description: "Start a deployment", AdminOnly: true},
			{Command: "/health", Description: "Check service health", AdminOnly: true},
			{Command: "/logs", Description: "Recent logs", AdminOnly: true},
			{Command: "/backup", Description: "Start a backup", AdminOnly: true},
		},
		Credentials: []string{CredentialHosting, CredentialGitHub},
	},
}
