package sqlexec

import (
	"strings"
)

// Split breaks a SQL script into individual statements on top-level
// semicolons. Semicolons inside single-quoted literals, double-quoted
// identifiers, dollar-quoted bodies, line comments and block comments do not
// terminate a statement, so function bodies and trigger definitions survive
// intact. A trailing statement without a terminating semicolon is returned as
// well. Statements that contain nothing but whitespace and comments are
// dropped.
func Split(script string) []string {
	var statements []string
	var sb strings.Builder

	i := 0
	n := len(script)
	for i < n {
		c := script[i]
		switch {
		case c == '-' && i+1 < n && script[i+1] == '-':
			end := skipLineComment(script, i)
			sb.WriteString(script[i:end])
			i = end
		case c == '/' && i+1 < n && script[i+1] == '*':
			end := skipBlockComment(script, i)
			sb.WriteString(script[i:end])
			i = end
		case c == '\'':
			end := skipQuoted(script, i, '\'')
			sb.WriteString(script[i:end])
			i = end
		case c == '"':
			end := skipQuoted(script, i, '"')
			sb.WriteString(script[i:end])
			i = end
		case c == '$':
			tag, ok := dollarTag(script, i)
			if !ok {
				sb.WriteByte(c)
				i++
				continue
			}
			end := skipDollarQuoted(script, i, tag)
			sb.WriteString(script[i:end])
			i = end
		case c == ';':
			if stmt := strings.TrimSpace(sb.String()); !onlyComments(stmt) {
				statements = append(statements, stmt)
			}
			sb.Reset()
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}

	if stmt := strings.TrimSpace(sb.String()); !onlyComments(stmt) {
		statements = append(statements, stmt)
	}

	return statements
}

func skipLineComment(s string, start int) int {
	if idx := strings.IndexByte(s[start:], '\n'); idx >= 0 {
		return start + idx + 1
	}
	return len(s)
}

// skipBlockComment honours nesting the way Postgres does.
func skipBlockComment(s string, start int) int {
	depth := 0
	i := start
	for i < len(s) {
		switch {
		case i+1 < len(s) && s[i] == '/' && s[i+1] == '*':
			depth++
			i += 2
		case i+1 < len(s) && s[i] == '*' && s[i+1] == '/':
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(s)
}

// skipQuoted handles both single-quoted literals and double-quoted
// identifiers, where a doubled quote character escapes itself.
func skipQuoted(s string, start int, quote byte) int {
	i := start + 1
	for i < len(s) {
		if s[i] != quote {
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			i += 2
			continue
		}
		return i + 1
	}
	return len(s)
}

// dollarTag recognises an opening dollar-quote delimiter at start, either the
// anonymous $$ or a tagged form like $body$. It returns the full delimiter
// including both dollar signs.
func dollarTag(s string, start int) (string, bool) {
	i := start + 1
	for i < len(s) {
		c := s[i]
		if c == '$' {
			return s[start : i+1], true
		}
		isTagChar := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isTagChar {
			return "", false
		}
		if i == start+1 && c >= '0' && c <= '9' {
			// $1 style positional parameters are not quote delimiters
			return "", false
		}
		i++
	}
	return "", false
}

func skipDollarQuoted(s string, start int, tag string) int {
	bodyStart := start + len(tag)
	if idx := strings.Index(s[bodyStart:], tag); idx >= 0 {
		return bodyStart + idx + len(tag)
	}
	return len(s)
}

// onlyComments reports whether the statement contains no executable SQL.
func onlyComments(stmt string) bool {
	i := 0
	n := len(stmt)
	for i < n {
		c := stmt[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '-' && i+1 < n && stmt[i+1] == '-':
			i = skipLineComment(stmt, i)
		case c == '/' && i+1 < n && stmt[i+1] == '*':
			i = skipBlockComment(stmt, i)
		default:
			return false
		}
	}
	return true
}
