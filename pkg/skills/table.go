package skills

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/chious/readmequest/pkg/progress"
)

const (
	DefaultMaxRows   = 10
	DefaultNameWidth = 10

	tableHeader = "| Skill      | Level | EXP Bar        | Usage    |\n" +
		"| ---------- | ----- | -------------- | -------- |\n"
)

// TableOptions configures [Table]. Zero values select defaults.
type TableOptions struct {
	MaxRows   int
	NameWidth int // minimum display width of the skill column
	BarWidth  int
}

func (o TableOptions) withDefaults() TableOptions {
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.NameWidth <= 0 {
		o.NameWidth = DefaultNameWidth
	}
	if o.BarWidth <= 0 {
		o.BarWidth = progress.DefaultBarWidth
	}
	return o
}

// Ranked returns a copy of stats ordered by percent, largest first. Ties
// keep their first-seen order.
func Ranked(stats Stats) Stats {
	out := make(Stats, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	return out
}

// Table renders the top languages as a markdown table. The header is always
// present, even for empty stats.
func Table(stats Stats, opts TableOptions) string {
	opts = opts.withDefaults()
	ranked := Ranked(stats)
	if len(ranked) > opts.MaxRows {
		ranked = ranked[:opts.MaxRows]
	}

	var b strings.Builder
	b.WriteString(tableHeader)
	for _, l := range ranked {
		fmt.Fprintf(&b, "| %s | Lv. %d | %s | %.2f%% |\n",
			runewidth.FillRight(l.Name, opts.NameWidth),
			l.Level,
			progress.Bar(l.Percent, opts.BarWidth),
			l.Percent)
	}
	return b.String()
}
