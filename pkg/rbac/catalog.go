package rbac

// DefaultCatalog returns the built-in CRM permission table: four roles
// across seven resources. It is static reference data loaded once at
// startup; runtime edits are not supported.
func DefaultCatalog() Catalog {
	return Catalog{
		RoleAdmin: {
			ResourceLeads:        {"create", "read", "update", "delete", "export", "import", "assign"},
			ResourceUsers:        {"create", "read", "update", "delete", "manage_roles"},
			ResourceCompetitors:  {"create", "read", "update", "delete", "scrape"},
			ResourceAI:           {"use", "view_history", "advanced_prompts"},
			ResourceAnalytics:    {"view_all", "export", "advanced_metrics"},
			ResourceSubscription: {"manage", "view_all_users", "billing"},
			ResourceSystem:       {"configure", "backup", "logs"},
		},
		RoleSalesManager: {
			ResourceLeads:        {"create", "read", "update", "delete", "export", "assign_team"},
			ResourceUsers:        {"read_team", "update_team"},
			ResourceCompetitors:  {"create", "read", "update", "scrape"},
			ResourceAI:           {"use", "view_history", "team_insights"},
			ResourceAnalytics:    {"view_team", "export_team"},
			ResourceSubscription: {"view_own"},
			ResourceSystem:       {},
		},
		RoleSalesRep: {
			ResourceLeads:        {"create", "read_own", "update_own", "export_own"},
			ResourceUsers:        {"read_own", "update_own"},
			ResourceCompetitors:  {"read", "basic_scrape"},
			ResourceAI:           {"use_basic", "view_own_history"},
			ResourceAnalytics:    {"view_own"},
			ResourceSubscription: {"view_own"},
			ResourceSystem:       {},
		},
		RoleViewer: {
			ResourceLeads:        {"read_assigned"},
			ResourceUsers:        {"read_own"},
			ResourceCompetitors:  {"read"},
			ResourceAI:           {},
			ResourceAnalytics:    {"view_basic"},
			ResourceSubscription: {"view_own"},
			ResourceSystem:       {},
		},
	}
}
