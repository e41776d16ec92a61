// Package cli implements the redline command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/redlinehq/redline"
	"github.com/redlinehq/redline/internal/config"
	"github.com/redlinehq/redline/internal/log"
	"github.com/redlinehq/redline/internal/termdiff"
	ucli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Version is the redline version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.3.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// runError marks failures that happen after the args parsed cleanly: an
// unreadable operand, a broken config file, a render failure. Everything else
// is arg misuse.
type runError struct {
	err error
}

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	o := &RunOptions{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			o.In = opts.In
		}
		if opts.Out != nil {
			o.Out = opts.Out
		}
		if opts.Err != nil {
			o.Err = opts.Err
		}
	}

	log.Init()

	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}
	log.Debugf("redline %s: args=%v", Version, argv)

	// Handled before flag parsing so `redline --version` works without operands.
	for _, a := range argv {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(o.Out, "redline "+Version)
			return 0, nil
		}
	}

	err := newCommand(o).Run(context.Background(), maskStdin(args))
	if err == nil {
		return 0, nil
	}
	fmt.Fprintln(o.Err, "redline: "+err.Error())
	var re *runError
	if errors.As(err, &re) {
		return 1, err
	}
	return 2, err
}

// stdinArg stands in for a bare "-" operand while urfave/cli parses the
// args: the parser drops a lone "-" instead of keeping it positional. run
// maps the placeholder back before reading operands.
const stdinArg = "\x00-"

func maskStdin(args []string) []string {
	masked := make([]string, len(args))
	copy(masked, args)
	for i := 1; i < len(masked); i++ {
		if masked[i] == "-" {
			masked[i] = stdinArg
		}
	}
	return masked
}

func newCommand(o *RunOptions) *ucli.Command {
	return &ucli.Command{
		Name:      "redline",
		Usage:     "show word-level edits between two texts",
		ArgsUsage: "<source> <test>",
		Writer:    o.Out,
		ErrWriter: o.Err,
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "markup `STYLE`: " + strings.Join(redline.StyleNames(), ", ")},
			&ucli.StringFlag{Name: "ins-class", Usage: "css `CLASS` for insertions (custom-css style)"},
			&ucli.StringFlag{Name: "del-class", Usage: "css `CLASS` for deletions (custom-css style)"},
			&ucli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT`: auto, markdown, term, html"},
			&ucli.StringFlag{Name: "color", Usage: "colorize term output: auto, always, never"},
			&ucli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "wrap term output at `COLS` (0 = terminal width)"},
			&ucli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load config from `FILE`"},
			&ucli.BoolFlag{Name: "text", Aliases: []string{"t"}, Usage: "treat operands as literal text, not paths"},
			&ucli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress rendered output"},
			&ucli.BoolFlag{Name: "version", Aliases: []string{"v"}, Usage: "print the version", HideDefault: true},
		},
		Action: func(ctx context.Context, cmd *ucli.Command) error {
			return run(cmd, o)
		},
	}
}

func run(cmd *ucli.Command, o *RunOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flags override the config file.
	if cmd.IsSet("style") {
		cfg.Style = cmd.String("style")
	}
	if cmd.IsSet("ins-class") {
		cfg.InsClass = cmd.String("ins-class")
	}
	if cmd.IsSet("del-class") {
		cfg.DelClass = cmd.String("del-class")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("color") {
		cfg.Color = cmd.String("color")
	}
	if cmd.IsSet("width") {
		cfg.Width = int(cmd.Int("width"))
	}

	// The config file was validated at load, so anything wrong here came from a
	// flag and counts as misuse.
	style, err := redline.ParseStyle(cfg.Style)
	if err != nil {
		return err
	}
	switch cfg.Format {
	case "", "auto", "markdown", "term", "html":
	default:
		return fmt.Errorf("unknown format %q (want auto, markdown, term, or html)", cfg.Format)
	}
	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always, or never)", cfg.Color)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width must be >= 0, got %d", cfg.Width)
	}

	operands := cmd.Args().Slice()
	for i, op := range operands {
		if op == stdinArg {
			operands[i] = "-"
		}
	}
	if len(operands) != 2 {
		return fmt.Errorf("expected exactly 2 operands (source and test), got %d", len(operands))
	}
	literal := cmd.Bool("text")
	if !literal && operands[0] == "-" && operands[1] == "-" {
		return errors.New("only one operand may read from stdin")
	}

	source, err := readOperand(operands[0], literal, o.In)
	if err != nil {
		return err
	}
	test, err := readOperand(operands[1], literal, o.In)
	if err != nil {
		return err
	}

	r, err := redline.New(source, &redline.Options{Style: style, InsClass: cfg.InsClass, DelClass: cfg.DelClass})
	if err != nil {
		return err
	}
	out, err := r.Compare(test, nil)
	if err != nil {
		return err
	}

	format := cfg.Format
	if format == "" || format == "auto" {
		if isTerminal(o.Out) {
			format = "term"
		} else {
			format = "markdown"
		}
	}
	log.Debugf("rendering: style=%s format=%s", style, format)

	var rendered string
	switch format {
	case "markdown":
		rendered = out
	case "html":
		rendered, err = markdownToHTML(out)
		if err != nil {
			return &runError{err}
		}
	case "term":
		rendered = termdiff.Render(r.Ops(), r.SourceTokens(), r.TestTokens(), termdiff.Options{
			Width: resolveWidth(cmd, cfg, o.Out),
			Color: useColor(cfg.Color, o.Out),
		})
	}

	if cmd.Bool("quiet") {
		return nil
	}
	if rendered != "" && !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	fmt.Fprint(o.Out, rendered)
	return nil
}

// loadConfig reads the file named by --config, or the default config path.
// Config problems are runtime errors, not misuse: the args themselves were
// fine.
func loadConfig(cmd *ucli.Command) (*config.Config, error) {
	if cmd.IsSet("config") {
		cfg, err := config.LoadFrom(cmd.String("config"))
		if err != nil {
			return nil, &runError{err}
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, &runError{err}
	}
	return cfg, nil
}

// readOperand resolves one positional operand: the arg itself when --text is
// set, stdin for "-", otherwise a file path.
func readOperand(arg string, literal bool, in io.Reader) (string, error) {
	if literal {
		return arg, nil
	}
	if arg == "-" {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", &runError{fmt.Errorf("read stdin: %w", err)}
		}
		return string(b), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return "", &runError{err}
	}
	log.Debugf("read operand: path=%s bytes=%d", arg, len(b))
	return string(b), nil
}

// useColor reports whether term output should carry ANSI styling.
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal(out)
}

// resolveWidth picks the wrap width for term output. An unset flag defers to
// the config file; an explicit --width 0 asks for the terminal's width.
func resolveWidth(cmd *ucli.Command, cfg *config.Config, out io.Writer) int {
	if !cmd.IsSet("width") {
		return cfg.Width
	}
	if w := cmd.Int("width"); w > 0 {
		return int(w)
	}
	return terminalWidth(out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns out's column count, or 80 when out is not a terminal
// or its size cannot be read.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return 80
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
