package seeds

// Setting category constants
const (
	CategoryPayments      = "payments"
	CategoryNotifications = "notifications"
	CategoryBookings      = "bookings"
	CategoryReaders       = "readers"
	CategoryPlatform      = "platform"
)

// DefaultEntries returns the baseline configuration rows for a fresh
// environment. None of the defaults carry credentials; sensitive entries are
// placeholders that operators override through a manifest or the environment
// before go-live.
func DefaultEntries() []Entry {
	return []Entry{
		{Key: "payment_provider", Value: "stripe", Category: CategoryPayments},
		{Key: "payment_mode", Value: "test", Category: CategoryPayments},
		{Key: "payment_currency", Value: "USD", Category: CategoryPayments},
		{Key: "payment_webhook_secret", Value: "", Category: CategoryPayments, Sensitive: true},

		{Key: "notification_sender_email", Value: "noreply@samiatarot.com", Category: CategoryNotifications},
		{Key: "notification_sender_name", Value: "Samia Tarot", Category: CategoryNotifications},
		{Key: "notification_daily_limit", Value: "500", Category: CategoryNotifications},

		{Key: "booking_min_lead_hours", Value: "2", Category: CategoryBookings},
		{Key: "booking_max_per_day", Value: "20", Category: CategoryBookings},
		{Key: "booking_cancellation_hours", Value: "24", Category: CategoryBookings},

		{Key: "reader_commission_percent", Value: "70", Category: CategoryReaders},
		{Key: "reader_auto_approve", Value: "false", Category: CategoryReaders},

		{Key: "platform_maintenance_mode", Value: "false", Category: CategoryPlatform},
		{Key: "platform_support_email", Value: "support@samiatarot.com", Category: CategoryPlatform},
	}
}
