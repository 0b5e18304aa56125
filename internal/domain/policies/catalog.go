package policies

// Expressions shared across the catalog. Role claims ride in the JWT the
// backend platform issues; auth.uid() and auth.jwt() are provided by it.
const (
	adminExpr   = "(auth.jwt() ->> 'role') = 'admin'"
	monitorExpr = "(auth.jwt() ->> 'role') IN ('monitor', 'admin')"
)

// DefaultPolicies returns the catalog of row level security policies for the
// platform tables. Applying the catalog is idempotent: each policy is dropped
// and recreated, so edits here roll out on the next apply.
func DefaultPolicies() []Policy {
	return []Policy{
		{
			Table:   "profiles",
			Name:    "profiles_self_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   "id = auth.uid()",
		},
		{
			Table:     "profiles",
			Name:      "profiles_self_update",
			Command:   CommandUpdate,
			Roles:     []string{"authenticated"},
			Using:     "id = auth.uid()",
			WithCheck: "id = auth.uid()",
		},
		{
			Table:   "profiles",
			Name:    "profiles_admin_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   adminExpr,
		},
		{
			Table:   "bookings",
			Name:    "bookings_client_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   "user_id = auth.uid()",
		},
		{
			Table:     "bookings",
			Name:      "bookings_client_create",
			Command:   CommandInsert,
			Roles:     []string{"authenticated"},
			WithCheck: "user_id = auth.uid()",
		},
		{
			Table:   "bookings",
			Name:    "bookings_reader_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   "reader_id = auth.uid()",
		},
		{
			Table:     "bookings",
			Name:      "bookings_admin_manage",
			Command:   CommandAll,
			Roles:     []string{"authenticated"},
			Using:     adminExpr,
			WithCheck: adminExpr,
		},
		{
			Table:   "services",
			Name:    "services_public_read",
			Command: CommandSelect,
			Roles:   []string{"anon", "authenticated"},
			Using:   "is_active = true",
		},
		{
			Table:     "services",
			Name:      "services_admin_manage",
			Command:   CommandAll,
			Roles:     []string{"authenticated"},
			Using:     adminExpr,
			WithCheck: adminExpr,
		},
		{
			Table:   "notifications",
			Name:    "notifications_self_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   "user_id = auth.uid()",
		},
		{
			Table:     "notifications",
			Name:      "notifications_self_update",
			Command:   CommandUpdate,
			Roles:     []string{"authenticated"},
			Using:     "user_id = auth.uid()",
			WithCheck: "user_id = auth.uid()",
		},
		{
			Table:   "tarot_decks",
			Name:    "tarot_decks_public_read",
			Command: CommandSelect,
			Roles:   []string{"anon", "authenticated"},
			Using:   "is_active = true",
		},
		{
			Table:     "tarot_decks",
			Name:      "tarot_decks_admin_manage",
			Command:   CommandAll,
			Roles:     []string{"authenticated"},
			Using:     adminExpr,
			WithCheck: adminExpr,
		},
		{
			Table:   "tarot_spreads",
			Name:    "tarot_spreads_public_read",
			Command: CommandSelect,
			Roles:   []string{"anon", "authenticated"},
			Using:   "is_active = true",
		},
		{
			Table:     "tarot_spreads",
			Name:      "tarot_spreads_admin_manage",
			Command:   CommandAll,
			Roles:     []string{"authenticated"},
			Using:     adminExpr,
			WithCheck: adminExpr,
		},
		{
			Table:     "payment_settings",
			Name:      "payment_settings_admin_manage",
			Command:   CommandAll,
			Roles:     []string{"authenticated"},
			Using:     adminExpr,
			WithCheck: adminExpr,
		},
		{
			Table:   "chat_monitoring",
			Name:    "chat_monitoring_monitor_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   monitorExpr,
		},
		{
			Table:   "admin_audit_logs",
			Name:    "admin_audit_logs_admin_read",
			Command: CommandSelect,
			Roles:   []string{"authenticated"},
			Using:   adminExpr,
		},
		{
			Table:   "app_settings",
			Name:    "app_settings_public_read",
			Command: CommandSelect,
			Roles:   []string{"anon", "authenticated"},
			Using:   "sensitive = false",
		},
		{
			Table:     "app_settings",
			Name:      "app_settings_admin_manage",
			Command:   CommandAll,
			Roles:     []string{"authenticated"},
			Using:     adminExpr,
			WithCheck: adminExpr,
		},
	}
}
