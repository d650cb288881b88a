package headings

import "strings"

type entry struct {
	level int
	text  string
}

// Tracker maintains the stack of enclosing headings while a document is
// walked in order. Each position in the document maps to a breadcrumb of the
// headings still open at that point.
type Tracker struct {
	path []entry
}

// Update records a new heading: every trailing entry at the same or a deeper
// level is popped, then the heading is pushed. Out-of-order nesting (an h3
// directly under an h1) is kept as-is; the tracker never validates document
// structure.
func (t *Tracker) Update(text string, level int) {
	for len(t.path) > 0 && t.path[len(t.path)-1].level >= level {
		t.path = t.path[:len(t.path)-1]
	}
	t.path = append(t.path, entry{level: level, text: strings.TrimSpace(text)})
}

// Path returns the current breadcrumb, outermost heading first, joined with
// " / ". Before any heading is seen it is the empty string.
func (t *Tracker) Path() string {
	if len(t.path) == 0 {
		return ""
	}
	parts := make([]string, len(t.path))
	for i, e := range t.path {
		parts[i] = e.text
	}
	return strings.Join(parts, " / ")
}

// Depth reports how many headings are currently open.
func (t *Tracker) Depth() int {
	return len(t.path)
}
