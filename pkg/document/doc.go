// Package document locates elements inside the HTML fragments embedded in a
// markdown file and splices replacements into the surrounding text.
//
// It is not an HTML parser. It tokenizes just enough markup to find an
// element by tag and id and walk to its matching closing tag, counting
// nested elements of the same name along the way. Everything outside the
// returned [Span] is left byte-for-byte intact by [Span.Replace].
//
// Markdown structure is not understood: markup inside fenced code blocks
// or inline code is scanned like any other text, so an example
// <section id="skills-section"> in a ``` fence that precedes the real one
// is matched first.
//
//	span, err := document.Find(src, document.Selector{Tag: "section", ID: "skills-section"})
//	if err != nil {
//	    return err
//	}
//	src = span.Replace(src, fresh)
package document
