package drift

// ExpectedCatalog returns the schema the migration scripts produce plus the
// toolkit's own tables. schema check compares the live database against this
// list, so a column added here without a matching migration will report as
// drift until the migration lands.
func ExpectedCatalog() []TableSpec {
	return []TableSpec{
		{
			Name: "profiles",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "email", DataType: "varchar"},
				{Name: "display_name", DataType: "varchar", Nullable: true},
				{Name: "role", DataType: "varchar"},
				{Name: "password_hash", DataType: "varchar", Nullable: true},
				{Name: "created_at", DataType: "timestamptz"},
				{Name: "updated_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "services",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "name", DataType: "varchar"},
				{Name: "description", DataType: "text", Nullable: true},
				{Name: "price_cents", DataType: "integer"},
				{Name: "duration_minutes", DataType: "integer"},
				{Name: "is_active", DataType: "boolean"},
				{Name: "created_at", DataType: "timestamptz"},
				{Name: "updated_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "bookings",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "user_id", DataType: "uuid"},
				{Name: "reader_id", DataType: "uuid", Nullable: true},
				{Name: "service_id", DataType: "uuid"},
				{Name: "status", DataType: "varchar"},
				{Name: "scheduled_at", DataType: "timestamptz", Nullable: true},
				{Name: "notes", DataType: "text", Nullable: true},
				{Name: "created_at", DataType: "timestamptz"},
				{Name: "updated_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "notifications",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "user_id", DataType: "uuid"},
				{Name: "title", DataType: "varchar"},
				{Name: "body", DataType: "text", Nullable: true},
				{Name: "read", DataType: "boolean"},
				{Name: "created_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "tarot_decks",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "name", DataType: "varchar"},
				{Name: "description", DataType: "text", Nullable: true},
				{Name: "card_count", DataType: "integer"},
				{Name: "is_active", DataType: "boolean"},
				{Name: "created_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "tarot_spreads",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "deck_id", DataType: "uuid", Nullable: true},
				{Name: "name", DataType: "varchar"},
				{Name: "positions", DataType: "integer"},
				{Name: "description", DataType: "text", Nullable: true},
				{Name: "is_active", DataType: "boolean"},
				{Name: "created_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "payment_settings",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "provider", DataType: "varchar"},
				{Name: "mode", DataType: "varchar"},
				{Name: "public_key", DataType: "text", Nullable: true},
				{Name: "secret_ref", DataType: "varchar", Nullable: true},
				{Name: "is_active", DataType: "boolean"},
				{Name: "updated_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "chat_monitoring",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "booking_id", DataType: "uuid", Nullable: true},
				{Name: "flagged_by", DataType: "uuid", Nullable: true},
				{Name: "reason", DataType: "varchar", Nullable: true},
				{Name: "severity", DataType: "varchar"},
				{Name: "resolved", DataType: "boolean"},
				{Name: "created_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "admin_audit_logs",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "category", DataType: "varchar"},
				{Name: "action", DataType: "varchar"},
				{Name: "actor", DataType: "varchar", Nullable: true},
				{Name: "target_table", DataType: "varchar", Nullable: true},
				{Name: "severity", DataType: "varchar"},
				{Name: "message", DataType: "text", Nullable: true},
				{Name: "metadata", DataType: "jsonb", Nullable: true},
				{Name: "created_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "app_settings",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "uuid"},
				{Name: "key", DataType: "varchar"},
				{Name: "value", DataType: "text", Nullable: true},
				{Name: "category", DataType: "varchar"},
				{Name: "sensitive", DataType: "boolean"},
				{Name: "created_at", DataType: "timestamptz"},
				{Name: "updated_at", DataType: "timestamptz"},
			},
		},
		{
			Name: "ops_migrations",
			Columns: []ColumnSpec{
				{Name: "id", DataType: "bigint"},
				{Name: "name", DataType: "varchar"},
				{Name: "checksum", DataType: "varchar"},
				{Name: "statements", DataType: "integer"},
				{Name: "failed", DataType: "integer"},
				{Name: "applied_at", DataType: "timestamptz"},
			},
		},
	}
}
