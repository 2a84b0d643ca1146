// Package naming derives the symbol and file names of generated handlers.
package naming

import (
	"strings"
	"unicode"
)

const (
	fallbackPascal = "Generated"
	fallbackKebab  = "generated"
)

// Words splits s into words. A boundary is inserted where a lowercase
// letter or digit is followed by an uppercase letter, then the string is
// split on every run of characters that are not ASCII letters or digits.
func Words(s string) []string {
	var (
		words []string
		cur   strings.Builder
		prev  rune
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if !isAlnum(r) {
			flush()
			prev = r
			continue
		}
		if isUpper(r) && (isLower(prev) || isDigit(prev)) {
			flush()
		}
		cur.WriteRune(r)
		prev = r
	}
	flush()
	return words
}

// Pascal returns s in PascalCase: each word capitalized with the rest of
// the word lowercased. It returns "Generated" when s has no words.
func Pascal(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return fallbackPascal
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Camel returns Pascal(s) with its first character lowercased.
func Camel(s string) string {
	p := Pascal(s)
	return strings.ToLower(p[:1]) + p[1:]
}

// Kebab returns the lowercased words of s joined with "-". It returns
// "generated" when s has no words.
func Kebab(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return fallbackKebab
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

func capitalize(w string) string {
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

func isAlnum(r rune) bool { return isLower(r) || isUpper(r) || isDigit(r) }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Handler holds the names generated for one operation.
type Handler struct {
	// Base is the PascalCase operation name, e.g. "PostUsers".
	Base string
	// Name is the handler symbol, e.g. "PostUsersHandler".
	Name string
	// VarName is the camelCase handler variable, e.g. "postUsersHandler".
	VarName string
	// FileStem is the file name without extension, e.g. "post-users.handler".
	FileStem string
}

// FileName returns the TypeScript file name of the handler.
func (h Handler) FileName() string { return h.FileStem + ".ts" }

// ForOperation derives handler names from an operation id, falling back to
// "<method> <path>" when the id is empty.
func ForOperation(operationID, method, path string) Handler {
	source := operationID
	if source == "" {
		source = method + " " + path
	}
	base := Pascal(source)
	name := base + "Handler"
	return Handler{
		Base:     base,
		Name:     name,
		VarName:  Camel(name),
		FileStem: Kebab(base) + ".handler",
	}
}

// IsIdentifier reports whether s can be used as a bare TypeScript
// identifier.
func IsIdentifier(s string) bool {
	if s == "" || reservedWords[s] {
		return false
	}
	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}
	return true
}

// TypeScript reserved words.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "implements": true,
	"import": true, "in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true, "protected": true,
	"public": true, "return": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "type": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true,
}
