package sema

import (
	"unicode/utf8"

	"gpex/internal/diag"
	"gpex/internal/source"
)

var noLocation source.Span

func (c *checker) checkSingleChar(name string, span source.Span) {
	if utf8.RuneCountInString(name) == 1 && name != "_" {
		c.report(diag.SemaSingleCharName, diag.SevWarning, span, "`%s` identifier is single character", name).Emit()
	}
}

func (c *checker) checkSnakeCase(name string, span source.Span) {
	if !IsSnakeCase(name) {
		c.report(diag.SemaNameStyle, diag.SevWarning, span, "`%s` identifier not in snake_case", name).Emit()
	}
}

func (c *checker) checkScreamingSnakeCase(name string, span source.Span) {
	if !IsScreamingSnakeCase(name) {
		c.report(diag.SemaNameStyle, diag.SevWarning, span, "`%s` identifier not in SCREAMING_SNAKE_CASE", name).Emit()
	}
}

// IsSnakeCase accepts lowercase ASCII letters, digits and underscores.
func IsSnakeCase(name string) bool {
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') && ch != '_' {
			return false
		}
	}
	return true
}

// IsScreamingSnakeCase accepts uppercase ASCII letters, digits and underscores.
func IsScreamingSnakeCase(name string) bool {
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') && ch != '_' {
			return false
		}
	}
	return true
}
