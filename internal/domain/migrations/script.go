package migrations

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Script state constants
const (
	StatePending = "pending"
	StateApplied = "applied"
	StateDrifted = "drifted"
	StateMissing = "missing"
)

// ErrNotFound is returned when a named script exists in neither the
// migrations directory nor the ledger.
var ErrNotFound = errors.New("migration script not found")

// Script is a SQL file from the migrations directory.
type Script struct {
	Name     string
	Path     string
	SQL      string
	Checksum string
}

// Record is one ledger row in ops_migrations.
type Record struct {
	Name       string
	Checksum   string
	Statements int
	Failed     int
	AppliedAt  time.Time
}

// ScriptStatus pairs a script with its ledger state.
type ScriptStatus struct {
	Name      string
	State     string
	Checksum  string
	AppliedAt *time.Time
}

// Checksum returns the hex-encoded SHA-256 digest of the raw script bytes.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LoadScripts reads every .sql file in dir and returns them sorted by file
// name. Lexical order is the execution order, which is why script names
// carry a zero-padded numeric prefix.
func LoadScripts(dir string) ([]*Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var scripts []*Script
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration script %s: %w", path, err)
		}

		scripts = append(scripts, &Script{
			Name:     entry.Name(),
			Path:     path,
			SQL:      string(data),
			Checksum: Checksum(data),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})

	return scripts, nil
}
