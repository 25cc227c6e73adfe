package diag

import (
	"sort"
)

// Bag collects diagnostics in emission order up to a limit.
// Dropped entries still count towards HasErrors/HasWarnings.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped [SevError + 1]int
}

// NewBag creates a bag; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 || capacity > 64 {
		capacity = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		if int(d.Severity) < len(b.dropped) {
			b.dropped[d.Severity]++
		}
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors возвращает true, если есть хотя бы одна ошибка.
func (b *Bag) HasErrors() bool {
	return b.count(SevError) > 0
}

// HasWarnings возвращает true, если есть хотя бы одно предупреждение.
func (b *Bag) HasWarnings() bool {
	return b.count(SevWarning) > 0
}

// Count returns the number of diagnostics with the given severity,
// including those dropped by the limit.
func (b *Bag) Count(sev Severity) int {
	return b.count(sev)
}

func (b *Bag) count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	if int(sev) < len(b.dropped) {
		n += b.dropped[sev]
	}
	return n
}

// Failed reports whether the collected diagnostics fail a compilation.
func (b *Bag) Failed(warningsAsErrors bool) bool {
	return b.HasErrors() || (warningsAsErrors && b.HasWarnings())
}

// Dropped returns how many diagnostics did not fit into the bag.
func (b *Bag) Dropped() int {
	total := 0
	for _, n := range b.dropped {
		total += n
	}
	return total
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends the diagnostics of other, ignoring the limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	for i, n := range other.dropped {
		b.dropped[i] += n
	}
}

// Sort orders diagnostics by primary span, then severity (errors first).
// Location-less diagnostics go first. Emission order is kept for ties.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if c := di.Primary.Compare(dj.Primary); c != 0 {
			return c < 0
		}
		return di.Severity > dj.Severity
	})
}
