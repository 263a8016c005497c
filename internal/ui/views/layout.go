package views

import "pickgrip/internal/dom"

// Zone is a screen rectangle belonging to one element of a field
type Zone struct {
	Field  int
	Target dom.Target
	Top    int // first line
	Bottom int // last line, inclusive
	Left   int // first column
	Right  int // column after the last one
}

func (z Zone) contains(x, y int) bool {
	return y >= z.Top && y <= z.Bottom && x >= z.Left && x < z.Right
}

func (z Zone) area() int {
	return (z.Bottom - z.Top + 1) * (z.Right - z.Left)
}

// Layout maps screen cells back to the elements drawn there
type Layout struct {
	zones []Zone
}

// Add records a zone. Empty zones are ignored.
func (l *Layout) Add(z Zone) {
	if z.Right <= z.Left || z.Bottom < z.Top {
		return
	}
	l.zones = append(l.zones, z)
}

// At returns the innermost zone under the cell, false when the cell is
// outside every field
func (l Layout) At(x, y int) (Zone, bool) {
	var (
		best  Zone
		found bool
	)
	for _, z := range l.zones {
		if !z.contains(x, y) {
			continue
		}
		if !found || z.area() < best.area() {
			best = z
			found = true
		}
	}
	return best, found
}

// Zones returns every recorded zone
func (l Layout) Zones() []Zone {
	return l.zones
}

func (l *Layout) merge(other Layout, dy int) {
	for _, z := range other.zones {
		z.Top += dy
		z.Bottom += dy
		l.zones = append(l.zones, z)
	}
}
