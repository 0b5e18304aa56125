//go:build unit
// +build unit

package connector

// TestProjectURL is the hosted platform project URL for tests
const TestProjectURL = "https://project.example.co/"

// TestServiceRoleKey is a test service role key
const TestServiceRoleKey = "service-key"

// TestZoneName is the default DNS zone for tests
const TestZoneName = "samiatarot.com"

// TestSenderEmail is the default sender identity for tests
const TestSenderEmail = "sara@samiatarot.com"

// TestSenderName is the default sender display name for tests
const TestSenderName = "Samia Tarot"
