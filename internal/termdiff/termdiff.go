// Package termdiff renders an edit script for a terminal: deletions in red
// strikethrough, insertions in green bold, with an optional hard wrap at a
// display width. It consumes the script produced by the core package and
// never re-diffs.
package termdiff

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/redlinehq/redline"
)

// Options controls terminal rendering. Width 0 disables wrapping; Color
// false emits the merged text with no escape sequences at all.
type Options struct {
	Width int
	Color bool
}

// The renderer is pinned to the basic ANSI profile so output does not
// depend on the environment the process happens to run in.
var (
	colors = ansiRenderer()

	// Strikethrough styles every space-separated word in its own escape
	// sequence unless StrikethroughSpaces is off; one sequence per chunk,
	// spaces struck by the enclosing sequence.
	delStyle = colors.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true).StrikethroughSpaces(false)
	insStyle = colors.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// ansiRenderer builds a renderer that always styles for ANSI. NewRenderer
// detects the profile from its writer, and io.Discard detects as no color,
// so the profile has to be set explicitly after construction.
func ansiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}

type atomKind int

const (
	atomPlain atomKind = iota
	atomDel
	atomIns
)

// atom is one unwrappable piece of output: a token's text (or a pilcrow
// standing in for deleted line breaks) plus how to style it. lineBreak
// atoms pass through verbatim and reset the wrap column.
type atom struct {
	text      string
	kind      atomKind
	lineBreak bool
}

// Render lays out the edit script as styled terminal text. Wrapping is
// greedy and token-granular: a token never splits, so one wider than the
// width overflows its line. Styling is applied per emitted segment, never
// across a line break.
func Render(ops []redline.EditOp, source, test []redline.Token, opts Options) string {
	return layout(buildAtoms(ops, source, test), opts)
}

func buildAtoms(ops []redline.EditOp, source, test []redline.Token) []atom {
	var atoms []atom
	for _, op := range ops {
		switch op.Op {
		case redline.OpEqual:
			for _, t := range source[op.I1:op.I2] {
				atoms = append(atoms, atom{text: t.Text, kind: atomPlain, lineBreak: hasBreak(t.Text)})
			}
		case redline.OpDelete:
			atoms = appendDeletion(atoms, source[op.I1:op.I2])
		case redline.OpInsert:
			atoms = appendInsertion(atoms, test[op.J1:op.J2])
		case redline.OpReplace:
			atoms = appendDeletion(atoms, source[op.I1:op.I2])
			atoms = appendInsertion(atoms, test[op.J1:op.J2])
		}
	}
	return atoms
}

// appendDeletion adds one atom per deleted token, with each maximal run of
// newline-bearing tokens collapsed to a struck pilcrow. A deleted break is
// gone from the text, so it must not break the output line.
func appendDeletion(atoms []atom, run []redline.Token) []atom {
	prevBreak := false
	for _, t := range run {
		if hasBreak(t.Text) {
			if !prevBreak {
				atoms = append(atoms, atom{text: "¶", kind: atomDel})
			}
			prevBreak = true
			continue
		}
		atoms = append(atoms, atom{text: t.Text, kind: atomDel})
		prevBreak = false
	}
	return atoms
}

// appendInsertion adds one atom per inserted token; inserted breaks are
// real line breaks and pass through unstyled.
func appendInsertion(atoms []atom, run []redline.Token) []atom {
	for _, t := range run {
		if hasBreak(t.Text) {
			atoms = append(atoms, atom{text: t.Text, kind: atomPlain, lineBreak: true})
			continue
		}
		atoms = append(atoms, atom{text: t.Text, kind: atomIns})
	}
	return atoms
}

func layout(atoms []atom, opts Options) string {
	var out strings.Builder
	var chunk strings.Builder
	chunkKind := atomPlain
	cond := runewidth.NewCondition()
	col := 0

	flush := func() {
		if chunk.Len() == 0 {
			return
		}
		out.WriteString(styled(chunk.String(), chunkKind, opts.Color))
		chunk.Reset()
	}

	for _, a := range atoms {
		if a.lineBreak {
			flush()
			out.WriteString(a.text)
			col = 0
			continue
		}
		w := cond.StringWidth(a.text)
		if opts.Width > 0 && col > 0 && col+w > opts.Width {
			flush()
			out.WriteByte('\n')
			col = 0
			// The whitespace the wrap stands in for is not re-emitted.
			if isBlank(a.text) {
				continue
			}
		}
		if a.kind != chunkKind {
			flush()
			chunkKind = a.kind
		}
		chunk.WriteString(a.text)
		col += w
	}
	flush()
	return out.String()
}

func styled(text string, kind atomKind, color bool) string {
	if !color {
		return text
	}
	switch kind {
	case atomDel:
		return delStyle.Render(text)
	case atomIns:
		return insStyle.Render(text)
	}
	return text
}

func hasBreak(s string) bool {
	return strings.ContainsAny(s, "\n\r")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
