package shared

// Storage keys. The rsv360_ prefix is kept so data written by earlier
// deployments stays readable.
const (
	KeyBudgets          = "rsv360_budgets"
	KeyBudgetSettings   = "rsv360_budget_settings"
	KeyCompanyInfo      = "rsv360_company_info"
	KeyTemplates        = "rsv360_budget_templates"
	KeyTemplatesVersion = "rsv360_budget_templates_version"

	KeyAnalyticsEvents   = "rsv360_analytics_events"
	KeyTemplateAnalytics = "rsv360_template_analytics"
	KeyAnalyticsReports  = "rsv360_analytics_reports"

	KeyFavorites       = "rsv360_favorites"
	KeyRecentlyUsed    = "rsv360_recently_used"
	KeyUserPreferences = "rsv360_user_preferences"

	KeyTemplateVersions = "rsv360_template_versions"

	KeyUsers          = "rsv360_users"
	KeyCollaborations = "rsv360_collaborations"
	KeyComments       = "rsv360_comments"
	KeyWorkspaces     = "rsv360_workspaces"
	KeyActivities     = "rsv360_activities"
)

// DefaultActorID is used when a request carries no identity.
const DefaultActorID = "default_user"
