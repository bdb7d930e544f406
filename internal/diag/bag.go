package diag

import (
	"cmp"
	"math"
	"slices"
)

// Bag collects diagnostics up to a limit; Add past the limit is a no-op.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag clamps limit to 1..MaxUint16; limit <= 0 means the maximum.
func NewBag(limit int) *Bag {
	if limit <= 0 || limit > math.MaxUint16 {
		limit = math.MaxUint16
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: limit}
}

// Add reports false when the bag is already full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) any(pred func(*Diagnostic) bool) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return pred(&d) })
}

func (b *Bag) HasErrors() bool {
	return b.any(func(d *Diagnostic) bool { return d.Severity >= SevError })
}

// HasWarnings также истинно при наличии ошибок.
func (b *Bag) HasWarnings() bool {
	return b.any(func(d *Diagnostic) bool { return d.Severity >= SevWarning })
}

// Blocking reports whether any diagnostic fails a check run.
func (b *Bag) Blocking(warningsAsErrors bool) bool {
	return b.any(func(d *Diagnostic) bool { return d.Blocking(warningsAsErrors) })
}

// Count counts diagnostics of exactly sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends everything from other, raising the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.limit = max(b.limit, min(len(b.items)+len(other.items), math.MaxUint16))
	for _, d := range other.items {
		b.Add(d)
	}
}

// Sort orders by file and position, errors before warnings at the same
// span, then by code. Equal keys keep insertion order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
