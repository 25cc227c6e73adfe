// Package diag defines the diagnostic model shared by all compiler phases.
//
// A Diagnostic is one log entry: severity, numeric code, message, an optional
// primary span and nested notes (inner logs). Phases emit through a Reporter,
// usually via ReportError/ReportWarning and a ReportBuilder, and the driver
// collects everything into a Bag in emission order.
//
// Codes are grouped by range: SYN 2xxx for syntax, SEM 3xxx for semantic
// checks, IO 4xxx for file access and PRJ 5xxx for imports.
//
// Package diag does not format anything; rendering lives in internal/diagfmt.
package diag
