package diagfmt

// TextOpts configures the plain display form.
type TextOpts struct {
	Color bool
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	Context   bool // печатать строку исходника с подчёркиванием
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	IncludeNotes     bool
	Max              int // обрезка вывода, не Bag
}
