package redline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedStyle is returned when a style name or Style value is not
// one of the supported set. It is reported when options are first supplied,
// never silently papered over at render time.
var ErrUnsupportedStyle = errors.New("unsupported style")

// Style selects the markup emitted around deletions and insertions.
type Style int

const (
	// StyleRedGreen strikes deletions through in red and bolds insertions
	// in green, via inline span styles. The default.
	StyleRedGreen Style = iota
	// StyleRed is like StyleRedGreen but colors insertions red as well,
	// so only strikethrough distinguishes the two.
	StyleRed
	// StyleNone wraps runs in semantic <del> and <ins> tags with no visual
	// attributes.
	StyleNone
	// StyleCustomCSS emits spans carrying CSS classes (by default
	// "redline-deleted" and "redline-inserted", overridable per Options).
	StyleCustomCSS
	// StyleGHFM uses GitHub Flavored Markdown: ~~deletions~~ and
	// **insertions**. For environments that strip raw HTML.
	StyleGHFM
	// StyleBBCode uses BBCode forum markup: [s][color=red]...[/color][/s]
	// and [b][color=green]...[/color][/b].
	StyleBBCode
)

var styleNames = map[Style]string{
	StyleRedGreen:  "red-green",
	StyleRed:       "red",
	StyleNone:      "none",
	StyleCustomCSS: "custom-css",
	StyleGHFM:      "ghfm",
	StyleBBCode:    "bbcode",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle maps a style name to its Style. Unknown names are rejected
// with ErrUnsupportedStyle.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStyle, name)
}

// StyleNames lists the supported style names, in a fixed order suitable for
// help text.
func StyleNames() []string {
	return []string{"red-green", "red", "none", "custom-css", "ghfm", "bbcode"}
}

// Options configures rendering. The zero value renders StyleRedGreen.
// InsClass and DelClass apply only to StyleCustomCSS; empty means the
// defaults "redline-inserted" and "redline-deleted".
type Options struct {
	Style    Style
	InsClass string
	DelClass string
}

// markup is one resolved strategy: the literal text emitted around
// insertion and deletion runs.
type markup struct {
	insOpen, insClose string
	delOpen, delClose string
}

var styleMarkup = map[Style]markup{
	StyleRedGreen: {
		insOpen: "<span style='color:green;font-weight:700;'>", insClose: "</span>",
		delOpen: "<span style='color:red;font-weight:700;text-decoration:line-through;'>", delClose: "</span>",
	},
	StyleRed: {
		insOpen: "<span style='color:red;font-weight:700;'>", insClose: "</span>",
		delOpen: "<span style='color:red;font-weight:700;text-decoration:line-through;'>", delClose: "</span>",
	},
	StyleNone: {
		insOpen: "<ins>", insClose: "</ins>",
		delOpen: "<del>", delClose: "</del>",
	},
	StyleGHFM: {
		insOpen: "**", insClose: "**",
		delOpen: "~~", delClose: "~~",
	},
	StyleBBCode: {
		insOpen: "[b][color=green]", insClose: "[/color][/b]",
		delOpen: "[s][color=red]", delClose: "[/color][/s]",
	},
}

// resolve returns the markup strategy for the options, or
// ErrUnsupportedStyle for a Style outside the enumerated set.
func (o Options) resolve() (markup, error) {
	if o.Style == StyleCustomCSS {
		ins, del := o.InsClass, o.DelClass
		if ins == "" {
			ins = "redline-inserted"
		}
		if del == "" {
			del = "redline-deleted"
		}
		return markup{
			insOpen: fmt.Sprintf("<span class='%s'>", ins), insClose: "</span>",
			delOpen: fmt.Sprintf("<span class='%s'>", del), delClose: "</span>",
		}, nil
	}
	m, ok := styleMarkup[o.Style]
	if !ok {
		return markup{}, fmt.Errorf("%w: %s", ErrUnsupportedStyle, o.Style)
	}
	return m, nil
}

// Render turns an edit script into marked-up text. Equal runs are emitted
// verbatim; delete runs are wrapped in deletion markup; insert runs in
// insertion markup; replace runs emit the deletion first, then the
// insertion, never interleaved. opts == nil means the default Options.
//
// Markup never crosses a line boundary: within an insertion run, whitespace
// tokens containing a newline are emitted verbatim between spans, and within
// a deletion run a maximal run of such tokens is shown as a single struck
// pilcrow "¶". Outside the markup characters themselves, unchanged and
// inserted text is reproduced byte-for-byte.
//
// Render assumes ops is a valid covering script over source and test (as
// produced by Match); the only error condition is an unsupported Style.
func Render(ops []EditOp, source, test []Token, opts *Options) (string, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	m, err := o.resolve()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, op := range ops {
		switch op.Op {
		case OpEqual:
			for _, t := range source[op.I1:op.I2] {
				sb.WriteString(t.Text)
			}
		case OpDelete:
			writeDeletion(&sb, source[op.I1:op.I2], m)
		case OpInsert:
			writeInsertion(&sb, test[op.J1:op.J2], m)
		case OpReplace:
			writeDeletion(&sb, source[op.I1:op.I2], m)
			writeInsertion(&sb, test[op.J1:op.J2], m)
		}
	}
	return sb.String(), nil
}

// writeDeletion emits one deletion span. Newline-bearing whitespace inside
// the run collapses to a pilcrow so the deleted break stays visible without
// the markup crossing a line boundary.
func writeDeletion(sb *strings.Builder, run []Token, m markup) {
	if len(run) == 0 {
		return
	}
	sb.WriteString(m.delOpen)
	prevBreak := false
	for _, t := range run {
		if t.hasNewline() {
			if !prevBreak {
				sb.WriteString("¶")
			}
			prevBreak = true
			continue
		}
		sb.WriteString(t.Text)
		prevBreak = false
	}
	sb.WriteString(m.delClose)
}

// writeInsertion emits insertion spans. The run is split at newline-bearing
// whitespace tokens, which pass through verbatim between spans; empty spans
// are suppressed.
func writeInsertion(sb *strings.Builder, run []Token, m markup) {
	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		sb.WriteString(m.insOpen)
		sb.WriteString(seg.String())
		sb.WriteString(m.insClose)
		seg.Reset()
	}
	for _, t := range run {
		if t.hasNewline() {
			flush()
			sb.WriteString(t.Text)
			continue
		}
		seg.WriteString(t.Text)
	}
	flush()
}
