package document

import "strings"

// tag is one markup tag found by the scanner.
type tag struct {
	name        string // lowercased element name
	start, end  int    // byte offsets of '<' and one past '>'
	closing     bool   // </name>
	selfClosing bool   // <name ... />
	attrs       map[string]string
}

// scanner walks markup tags in order, skipping comments and text.
type scanner struct {
	src string
	pos int
}

// next returns the next tag at or after the scanner position.
func (s *scanner) next() (tag, bool) {
	for s.pos < len(s.src) {
		i := strings.IndexByte(s.src[s.pos:], '<')
		if i < 0 {
			s.pos = len(s.src)
			return tag{}, false
		}
		start := s.pos + i
		rest := s.src[start:]

		if strings.HasPrefix(rest, "<!--") {
			end := strings.Index(rest[4:], "-->")
			if end < 0 {
				s.pos = len(s.src)
				return tag{}, false
			}
			s.pos = start + 4 + end + 3
			continue
		}

		t, ok := parseTag(s.src, start)
		if !ok {
			s.pos = start + 1
			continue
		}
		s.pos = t.end
		return t, true
	}
	return tag{}, false
}

// parseTag reads a tag beginning at src[start] == '<'. Text that merely
// contains '<' (comparisons, arrows) does not parse as a tag.
func parseTag(src string, start int) (tag, bool) {
	i := start + 1
	t := tag{start: start}
	if i < len(src) && src[i] == '/' {
		t.closing = true
		i++
	}

	nameStart := i
	for i < len(src) && isNameByte(src[i]) {
		i++
	}
	if i == nameStart || !isLetter(src[nameStart]) {
		return tag{}, false
	}
	t.name = strings.ToLower(src[nameStart:i])

	for i < len(src) {
		i = skipSpace(src, i)
		if i >= len(src) {
			return tag{}, false
		}
		switch c := src[i]; {
		case c == '>':
			t.end = i + 1
			return t, true
		case c == '/' && i+1 < len(src) && src[i+1] == '>':
			t.selfClosing = true
			t.end = i + 2
			return t, true
		case c == '<':
			return tag{}, false
		}

		keyStart := i
		for i < len(src) && !isSpace(src[i]) && src[i] != '=' && src[i] != '>' && src[i] != '/' {
			i++
		}
		if i == keyStart {
			// stray '/' inside the tag
			i++
			continue
		}
		key := strings.ToLower(src[keyStart:i])
		val := ""

		j := skipSpace(src, i)
		if j < len(src) && src[j] == '=' {
			j = skipSpace(src, j+1)
			if j >= len(src) {
				return tag{}, false
			}
			if q := src[j]; q == '"' || q == '\'' {
				end := strings.IndexByte(src[j+1:], q)
				if end < 0 {
					return tag{}, false
				}
				val = src[j+1 : j+1+end]
				j += end + 2
			} else {
				vs := j
				for j < len(src) && !isSpace(src[j]) && src[j] != '>' {
					j++
				}
				val = src[vs:j]
			}
			i = j
		}

		if t.attrs == nil {
			t.attrs = make(map[string]string)
		}
		if _, dup := t.attrs[key]; !dup {
			t.attrs[key] = val
		}
	}
	return tag{}, false
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == ':' || c == '_'
}
