// Package cmdhelp carries the usage-string helpers and the dispatch
// wrapper the root command is executed through.
package cmdhelp

import (
	"strings"
	"unicode"
)

// Arg describes one positional argument of a command signature.
type Arg struct {
	Name     string
	Required bool
	Hidden   bool
}

// FormatArgs renders the usage fragment for a command's positional
// arguments. Required arguments become <NAME>, optional ones [<NAME>],
// hidden ones are omitted. Input order is preserved.
func FormatArgs(args []Arg) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg.Hidden {
			continue
		}
		name := "<" + strings.ToUpper(arg.Name) + ">"
		if !arg.Required {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

// LegacyUsage rewrites a usage signature into the legacy lowercase help
// convention: bare uppercase tokens become angle-bracketed, bracketed
// tokens keep their brackets, and the whole string is lowercased.
// "env add NAME [VALUE]" renders as "env add <name> [value]".
func LegacyUsage(usage string) string {
	fields := strings.Fields(usage)
	for i, tok := range fields {
		if isBareUpper(tok) {
			fields[i] = "<" + strings.ToLower(tok) + ">"
			continue
		}
		fields[i] = strings.ToLower(tok)
	}
	return strings.Join(fields, " ")
}

func isBareUpper(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsLower(r) || r == '[' || r == ']' || r == '<' || r == '>' {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
