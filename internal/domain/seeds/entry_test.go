//go:build unit
// +build unit

package seeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name      string
		entry     Entry
		shouldErr bool
	}{
		{"valid entry", Entry{Key: "payment_mode", Value: "test", Category: "payments"}, false},
		{"empty value is allowed", Entry{Key: "payment_webhook_secret", Value: "", Category: "payments", Sensitive: true}, false},
		{"missing key", Entry{Value: "x", Category: "payments"}, true},
		{"missing category", Entry{Key: "payment_mode", Value: "test"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestEntry_DisplayValue_RedactsSensitive(t *testing.T) {
	plain := Entry{Key: "payment_mode", Value: "live", Category: "payments"}
	secret := Entry{Key: "payment_webhook_secret", Value: "whsec_abc123", Category: "payments", Sensitive: true}

	assert.Equal(t, "live", plain.DisplayValue())
	assert.Equal(t, Redacted, secret.DisplayValue())
}

func TestDefaultEntries_AllValid(t *testing.T) {
	for _, e := range DefaultEntries() {
		require.NoError(t, e.Validate(), "default entry %s must validate", e.Key)
	}
}

func TestMerge_OverridesAndAppends(t *testing.T) {
	defaults := []Entry{
		{Key: "payment_mode", Value: "test", Category: "payments"},
		{Key: "reader_commission_percent", Value: "70", Category: "readers"},
	}
	overrides := []Entry{
		{Key: "payment_mode", Value: "live", Category: "payments"},
		{Key: "platform_support_email", Value: "ops@samiatarot.com", Category: "platform"},
	}

	merged := Merge(defaults, overrides)
	require.Len(t, merged, 3)

	assert.Equal(t, "live", merged[0].Value)
	assert.Equal(t, "reader_commission_percent", merged[1].Key)
	assert.Equal(t, "platform_support_email", merged[2].Key)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.yaml")

	content := `entries:
  - key: payment_mode
    value: live
    category: payments
  - key: payment_webhook_secret
    value: whsec_from_env
    category: payments
    sensitive: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	entries, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "payment_mode", entries[0].Key)
	assert.False(t, entries[0].Sensitive)
	assert.True(t, entries[1].Sensitive)
}

func TestLoadManifest_InvalidEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.yaml")

	content := `entries:
  - key: ""
    value: oops
    category: payments
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadManifest(path)
	assert.Error(t, err)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
