package drift

import (
	"fmt"
	"sort"
)

// ColumnSpec describes one column by normalized data type and nullability.
type ColumnSpec struct {
	Name     string
	DataType string
	Nullable bool
}

// TableSpec describes one table's expected or live shape. Column order is
// irrelevant for comparison.
type TableSpec struct {
	Name    string
	Columns []ColumnSpec
}

// Mismatch records a column whose live definition differs from the catalog.
type Mismatch struct {
	Table    string
	Column   string
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s.%s: expected %s, got %s", m.Table, m.Column, m.Expected, m.Actual)
}

// Drift is the outcome of comparing the live schema against the catalog.
// Unexpected tables are informational unless the caller runs in strict mode.
type Drift struct {
	MissingTables         []string
	UnexpectedTables      []string
	MissingColumns        []string
	TypeMismatches        []Mismatch
	NullabilityMismatches []Mismatch
}

// Clean reports whether the live schema carries everything the catalog
// expects with matching definitions. Live-only tables do not count against a
// clean result.
func (d *Drift) Clean() bool {
	return len(d.MissingTables) == 0 &&
		len(d.MissingColumns) == 0 &&
		len(d.TypeMismatches) == 0 &&
		len(d.NullabilityMismatches) == 0
}

// Compare checks every expected table and column against the live catalog.
// Data types and nullability are compared after normalization, so vendor
// aliases like character varying vs varchar do not report as drift.
func Compare(expected, live []TableSpec) *Drift {
	liveByName := make(map[string]TableSpec, len(live))
	for _, t := range live {
		liveByName[t.Name] = t
	}
	expectedNames := make(map[string]bool, len(expected))

	d := &Drift{}

	for _, want := range expected {
		expectedNames[want.Name] = true

		got, ok := liveByName[want.Name]
		if !ok {
			d.MissingTables = append(d.MissingTables, want.Name)
			continue
		}

		gotCols := make(map[string]ColumnSpec, len(got.Columns))
		for _, c := range got.Columns {
			gotCols[c.Name] = c
		}

		for _, wantCol := range want.Columns {
			gotCol, ok := gotCols[wantCol.Name]
			if !ok {
				d.MissingColumns = append(d.MissingColumns, want.Name+"."+wantCol.Name)
				continue
			}

			if NormalizeType(wantCol.DataType) != NormalizeType(gotCol.DataType) {
				d.TypeMismatches = append(d.TypeMismatches, Mismatch{
					Table:    want.Name,
					Column:   wantCol.Name,
					Expected: NormalizeType(wantCol.DataType),
					Actual:   NormalizeType(gotCol.DataType),
				})
			}

			if wantCol.Nullable != gotCol.Nullable {
				d.NullabilityMismatches = append(d.NullabilityMismatches, Mismatch{
					Table:    want.Name,
					Column:   wantCol.Name,
					Expected: nullability(wantCol.Nullable),
					Actual:   nullability(gotCol.Nullable),
				})
			}
		}
	}

	for name := range liveByName {
		if !expectedNames[name] {
			d.UnexpectedTables = append(d.UnexpectedTables, name)
		}
	}

	sort.Strings(d.MissingTables)
	sort.Strings(d.UnexpectedTables)
	sort.Strings(d.MissingColumns)

	return d
}

func nullability(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}
