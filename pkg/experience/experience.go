package experience

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/chious/readmequest/pkg/document"
	"github.com/chious/readmequest/pkg/progress"
)

const (
	// DefaultCap is the denominator shown next to the counter.
	DefaultCap = 2200

	// LevelID and ExpID are the ids of the list items rewritten on update.
	LevelID = "level"
	ExpID   = "exp"
)

// Options configures an update. Zero values select defaults.
type Options struct {
	Cap      int // denominator of the counter, display only
	BarWidth int
	Logger   *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Cap <= 0 {
		o.Cap = DefaultCap
	}
	if o.BarWidth <= 0 {
		o.BarWidth = progress.DefaultBarWidth
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Result describes what an update did.
type Result struct {
	Matched  bool // false when the document has no counter
	Old      int
	New      int
	Cap      int
	Percent  string // one decimal place, e.g. "90.9"
	Bar      string
	Level    progress.LevelInfo
	Replaced []string // ids of elements that were rewritten
	Content  string
}

var (
	defaultCounter = compileCounter(DefaultCap)
	counters       sync.Map // cap -> *regexp.Regexp
)

// compileCounter matches `<n> / <cap> EXP` inside backticks.
func compileCounter(maxExp int) *regexp.Regexp {
	return regexp.MustCompile("`(\\d+)\\s*/\\s*" + strconv.Itoa(maxExp) + " EXP`")
}

// counterPattern returns the compiled counter pattern for maxExp.
func counterPattern(maxExp int) *regexp.Regexp {
	if maxExp == DefaultCap {
		return defaultCounter
	}
	if re, ok := counters.Load(maxExp); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := counters.LoadOrStore(maxExp, compileCounter(maxExp))
	return re.(*regexp.Regexp)
}

// Update increments the counter found in content and rewrites the level and
// exp list items. When no counter is present the returned Result has
// Matched=false and Content equal to content.
func Update(content string, opts Options) (Result, error) {
	opts = opts.withDefaults()
	res := Result{Cap: opts.Cap, Content: content}

	m := counterPattern(opts.Cap).FindStringSubmatch(content)
	if m == nil {
		return res, nil
	}
	old, err := strconv.Atoi(m[1])
	if err != nil {
		return res, fmt.Errorf("parse experience %q: %w", m[1], err)
	}

	res.Matched = true
	res.Old = old
	res.New = old + 1
	res.Percent, res.Bar = Progress(res.New, opts.Cap, opts.BarWidth)
	res.Level = progress.CalculateLevel(res.New)

	out := content
	for _, el := range []struct {
		id   string
		html string
	}{
		{LevelID, LevelLine(res.Level)},
		{ExpID, ExpLine(res.New, opts.Cap, res.Bar, res.Percent)},
	} {
		next, err := document.ReplaceElement(out, document.Selector{Tag: "li", ID: el.id}, el.html)
		if err != nil {
			opts.Logger.Warn("skipping element", "id", el.id, "err", err)
			continue
		}
		out = next
		res.Replaced = append(res.Replaced, el.id)
	}
	res.Content = out
	return res, nil
}

// LevelLine renders the <li id="level"> element.
func LevelLine(l progress.LevelInfo) string {
	return fmt.Sprintf(`<li style="text-align: left" id="%s"><strong>Level</strong> %d → %d (%d EXP to next)</li>`,
		LevelID, l.Current, l.Next, l.ToNext)
}

// ExpLine renders the <li id="exp"> element.
func ExpLine(exp, maxExp int, bar, percent string) string {
	return fmt.Sprintf("<li style=\"text-align: left; display: flex; align-items: center; gap: 10px;\" id=\"%s\"><strong>Total Experience</strong> `%d / %d EXP` | %s (%s%%)</li>",
		ExpID, exp, maxExp, bar, percent)
}

// Progress returns exp as a share of maxExp, formatted with one decimal,
// and the bar drawn from that rounded figure.
func Progress(exp, maxExp, width int) (percent, bar string) {
	percent = formatPercent(float64(exp) / float64(maxExp) * 100)
	shown, _ := strconv.ParseFloat(percent, 64)
	return percent, progress.Bar(shown, width)
}

// formatPercent rounds half away from zero to one decimal place.
func formatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*10)/10, 'f', 1, 64)
}

// UpdateFile applies [Update] to the document at path and writes it back
// when the counter was found.
func UpdateFile(path string, opts Options) (Result, error) {
	content, err := document.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	res, err := Update(content, opts)
	if err != nil || !res.Matched {
		return res, err
	}
	if err := document.WriteFile(path, res.Content); err != nil {
		return res, err
	}
	return res, nil
}
