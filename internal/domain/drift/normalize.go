package drift

import (
	"strings"
)

// typeAliases maps Postgres type spellings onto one canonical name per type.
// information_schema reports the long forms; the catalog and migration
// scripts use the short ones.
var typeAliases = map[string]string{
	"character varying":           "varchar",
	"character":                   "char",
	"timestamp with time zone":    "timestamptz",
	"timestamp without time zone": "timestamp",
	"time with time zone":         "timetz",
	"time without time zone":      "time",
	"int":                         "integer",
	"int4":                        "integer",
	"serial":                      "integer",
	"int8":                        "bigint",
	"bigserial":                   "bigint",
	"int2":                        "smallint",
	"smallserial":                 "smallint",
	"bool":                        "boolean",
	"float8":                      "double precision",
	"float4":                      "real",
	"decimal":                     "numeric",
}

// NormalizeType lowercases a data type, strips any length or precision
// modifier, and resolves vendor aliases to a canonical name.
func NormalizeType(dataType string) string {
	t := strings.ToLower(strings.TrimSpace(dataType))

	if i := strings.IndexByte(t, '('); i >= 0 {
		j := strings.IndexByte(t[i:], ')')
		if j < 0 {
			t = strings.TrimSpace(t[:i])
		} else {
			t = strings.TrimSpace(t[:i] + t[i+j+1:])
		}
	}

	if canonical, ok := typeAliases[t]; ok {
		return canonical
	}
	return t
}
