package document

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no opening tag matches the selector.
	ErrNotFound = errors.New("element not found")

	// ErrUnclosed is returned when the matching opening tag has no
	// corresponding closing tag.
	ErrUnclosed = errors.New("element not closed")
)

// Selector identifies an element by tag name and id attribute.
// An empty Tag matches any element carrying the id.
type Selector struct {
	Tag string
	ID  string
}

func (s Selector) String() string {
	if s.Tag == "" {
		return fmt.Sprintf("#%s", s.ID)
	}
	return fmt.Sprintf("%s#%s", strings.ToLower(s.Tag), s.ID)
}

func (s Selector) matches(t tag) bool {
	if t.closing {
		return false
	}
	if s.Tag != "" && !strings.EqualFold(s.Tag, t.name) {
		return false
	}
	id, ok := t.attrs["id"]
	return ok && id == s.ID
}

// Span is the byte range of one element, from the '<' of its opening tag to
// one past the '>' of its closing tag.
type Span struct {
	Tag        string
	Start      int
	OpenEnd    int // one past the opening tag
	CloseStart int // '<' of the closing tag
	End        int
}

// Body returns the content between the opening and closing tags.
func (s Span) Body(src string) string {
	return src[s.OpenEnd:s.CloseStart]
}

// Outer returns the whole element including its tags.
func (s Span) Outer(src string) string {
	return src[s.Start:s.End]
}

// Replace returns src with the element swapped for repl.
func (s Span) Replace(src, repl string) string {
	return src[:s.Start] + repl + src[s.End:]
}

// Find returns the first element in src matching sel. Elements of the same
// name nested inside it are counted, so the span ends at the true matching
// close rather than the first closing tag of that name.
func Find(src string, sel Selector) (Span, error) {
	sc := &scanner{src: src}

	var open tag
	for {
		t, ok := sc.next()
		if !ok {
			return Span{}, fmt.Errorf("%w: %s", ErrNotFound, sel)
		}
		if sel.matches(t) {
			open = t
			break
		}
	}

	span := Span{Tag: open.name, Start: open.start, OpenEnd: open.end}
	if open.selfClosing {
		span.CloseStart, span.End = open.end, open.end
		return span, nil
	}

	depth := 1
	for {
		t, ok := sc.next()
		if !ok {
			return Span{}, fmt.Errorf("%w: %s opened at offset %d", ErrUnclosed, sel, open.start)
		}
		if t.name != open.name || t.selfClosing {
			continue
		}
		if t.closing {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			span.CloseStart, span.End = t.start, t.end
			return span, nil
		}
	}
}

// ReplaceElement finds the element matching sel and swaps it for repl.
func ReplaceElement(src string, sel Selector, repl string) (string, error) {
	span, err := Find(src, sel)
	if err != nil {
		return src, err
	}
	return span.Replace(src, repl), nil
}
