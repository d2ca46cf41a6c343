package document

import (
	"errors"
	"testing"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		sel       Selector
		wantOuter string
		wantBody  string
	}{
		{
			name:      "simple",
			src:       `a <li id="level">Level 1</li> b`,
			sel:       Selector{Tag: "li", ID: "level"},
			wantOuter: `<li id="level">Level 1</li>`,
			wantBody:  "Level 1",
		},
		{
			name:      "attributes before id",
			src:       `<ul><li style="text-align: left" id="exp"><strong>EXP</strong></li></ul>`,
			sel:       Selector{Tag: "li", ID: "exp"},
			wantOuter: `<li style="text-align: left" id="exp"><strong>EXP</strong></li>`,
			wantBody:  "<strong>EXP</strong>",
		},
		{
			name:      "case insensitive tag",
			src:       `<SECTION id="s">x</Section>`,
			sel:       Selector{Tag: "section", ID: "s"},
			wantOuter: `<SECTION id="s">x</Section>`,
			wantBody:  "x",
		},
		{
			name:      "nested same kind",
			src:       `<section id="s"><section>inner</section>tail</section>after</section>`,
			sel:       Selector{Tag: "section", ID: "s"},
			wantOuter: `<section id="s"><section>inner</section>tail</section>`,
			wantBody:  "<section>inner</section>tail",
		},
		{
			name:      "skips earlier elements",
			src:       `<li id="other">o</li><li id="level">l</li>`,
			sel:       Selector{Tag: "li", ID: "level"},
			wantOuter: `<li id="level">l</li>`,
			wantBody:  "l",
		},
		{
			name:      "any tag",
			src:       `<div id="x"><p>p</p></div>`,
			sel:       Selector{ID: "x"},
			wantOuter: `<div id="x"><p>p</p></div>`,
			wantBody:  "<p>p</p>",
		},
		{
			name:      "single quotes and multiline",
			src:       "<section\n  id='skills-section'>\nbody\n</section>",
			sel:       Selector{Tag: "section", ID: "skills-section"},
			wantOuter: "<section\n  id='skills-section'>\nbody\n</section>",
			wantBody:  "\nbody\n",
		},
		{
			name:      "ignores commented tags",
			src:       `<!-- <li id="level">old</li> --><li id="level">new</li>`,
			sel:       Selector{Tag: "li", ID: "level"},
			wantOuter: `<li id="level">new</li>`,
			wantBody:  "new",
		},
		{
			name:      "ignores prose with angle brackets",
			src:       `1 < 2 and a -> b <li id="level">x</li>`,
			sel:       Selector{Tag: "li", ID: "level"},
			wantOuter: `<li id="level">x</li>`,
			wantBody:  "x",
		},
		{
			name:      "self closing",
			src:       `<img id="logo" src="a.png"/> tail`,
			sel:       Selector{Tag: "img", ID: "logo"},
			wantOuter: `<img id="logo" src="a.png"/>`,
			wantBody:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := Find(tt.src, tt.sel)
			if err != nil {
				t.Fatalf("Find() error: %v", err)
			}
			if got := span.Outer(tt.src); got != tt.wantOuter {
				t.Errorf("Outer() = %q, want %q", got, tt.wantOuter)
			}
			if got := span.Body(tt.src); got != tt.wantBody {
				t.Errorf("Body() = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestFindIDMustMatchExactly(t *testing.T) {
	src := `<li id="level-up">no</li><li data-id="level">no</li>`
	_, err := Find(src, Selector{Tag: "li", ID: "level"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestFindDoesNotSkipCodeFences(t *testing.T) {
	example := "<section id=\"skills-section\">example</section>"
	src := "```html\n" + example + "\n```\n\n<section id=\"skills-section\">real</section>\n"
	span, err := Find(src, Selector{Tag: "section", ID: "skills-section"})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got := span.Body(src); got != "example" {
		t.Errorf("Body() = %q, want the fenced example", got)
	}
}

func TestFindErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"missing", "# Title\n\nno markup here", ErrNotFound},
		{"wrong tag", `<div id="skills-section"></div>`, ErrNotFound},
		{"unclosed", `<section id="skills-section"><p>x</p>`, ErrUnclosed},
		{"nested unclosed", `<section id="skills-section"><section></section>`, ErrUnclosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Find(tt.src, Selector{Tag: "section", ID: "skills-section"})
			if !errors.Is(err, tt.want) {
				t.Errorf("Find() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReplaceElement(t *testing.T) {
	src := "head\n<li id=\"exp\">old</li>\ntail"
	got, err := ReplaceElement(src, Selector{Tag: "li", ID: "exp"}, `<li id="exp">new</li>`)
	if err != nil {
		t.Fatalf("ReplaceElement() error: %v", err)
	}
	want := "head\n<li id=\"exp\">new</li>\ntail"
	if got != want {
		t.Errorf("ReplaceElement() = %q, want %q", got, want)
	}

	unchanged, err := ReplaceElement(src, Selector{Tag: "li", ID: "level"}, "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReplaceElement() error = %v, want ErrNotFound", err)
	}
	if unchanged != src {
		t.Error("ReplaceElement() modified src on error")
	}
}

func TestSelectorString(t *testing.T) {
	if got := (Selector{Tag: "LI", ID: "exp"}).String(); got != "li#exp" {
		t.Errorf("String() = %q, want %q", got, "li#exp")
	}
	if got := (Selector{ID: "exp"}).String(); got != "#exp" {
		t.Errorf("String() = %q, want %q", got, "#exp")
	}
}
