package checkfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bracelint/internal/diag"
	"bracelint/internal/driver"
	"bracelint/internal/source"
)

var (
	prettyErrorColor   = color.New(color.FgRed, color.Bold)
	prettyWarningColor = color.New(color.FgYellow, color.Bold)
	prettyInfoColor    = color.New(color.FgCyan)
	prettyPathColor    = color.New(color.Bold)
	prettyCaretColor   = color.New(color.FgGreen, color.Bold)
	prettyNoteColor    = color.New(color.FgHiBlack)
)

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return prettyErrorColor
	case diag.SevWarning:
		return prettyWarningColor
	default:
		return prettyInfoColor
	}
}

// Pretty renders check results in a human-readable form. For every file with
// findings it prints each diagnostic as
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//
// followed by the source line with a caret under the offending column and,
// when enabled, indented notes and a per-file counts footer. A run summary
// line closes the report.
func Pretty(w io.Writer, results []driver.CheckResult, fs *source.FileSet, opts PrettyOpts) {
	failed := 0
	totalDiags := 0

	for _, r := range results {
		if r.Clean() {
			continue
		}
		failed++
		totalDiags += r.Bag.Len()
		prettyFile(w, r, fs, opts)
	}

	fmt.Fprintln(w, prettySummary(len(results), failed, totalDiags, opts))
}

func prettyFile(w io.Writer, r driver.CheckResult, fs *source.FileSet, opts PrettyOpts) {
	path := displayPath(fs, r, opts.PathMode)

	for _, d := range r.Bag.Items() {
		head := paint(opts.Color, severityColor(d.Severity), d.Severity.String()) +
			" " + d.Code.ID() + ": " + d.Message

		text, caret, pos, ok := contextLine(fs, d.Primary, opts.ContextWidth)
		if ok {
			fmt.Fprintf(w, "%s:%d:%d: %s\n",
				paint(opts.Color, prettyPathColor, path), pos.Line, pos.Col, head)
			if text != "" {
				fmt.Fprintf(w, "    %s\n", text)
				if caret >= 0 {
					fmt.Fprintf(w, "    %s%s\n",
						strings.Repeat(" ", caret),
						paint(opts.Color, prettyCaretColor, "^"))
				}
			}
		} else {
			// No position, e.g. a file that could not be read.
			fmt.Fprintf(w, "%s: %s\n", paint(opts.Color, prettyPathColor, path), head)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				ntext, ncaret, npos, nok := contextLine(fs, n.Span, opts.ContextWidth)
				if !nok {
					continue
				}
				fmt.Fprintf(w, "    %s %s:%d:%d: %s\n",
					paint(opts.Color, prettyNoteColor, "note:"), path, npos.Line, npos.Col, n.Msg)
				if ntext != "" {
					fmt.Fprintf(w, "        %s\n", ntext)
					if ncaret >= 0 {
						fmt.Fprintf(w, "        %s%s\n",
							strings.Repeat(" ", ncaret),
							paint(opts.Color, prettyCaretColor, "^"))
					}
				}
			}
		}
	}

	if opts.ShowCounts {
		c := r.Counts
		fmt.Fprintf(w, "    counts: round %d/%d, square %d/%d, curly %d/%d, backticks %d\n",
			c.Round.Open, c.Round.Close,
			c.Square.Open, c.Square.Close,
			c.Curly.Open, c.Curly.Close,
			c.Backticks)
	}
}

func prettySummary(checked, failed, totalDiags int, opts PrettyOpts) string {
	files := "files"
	if checked == 1 {
		files = "file"
	}
	if failed == 0 {
		return fmt.Sprintf("checked %d %s: all clean", checked, files)
	}
	verdict := fmt.Sprintf("checked %d %s: %d clean, %d with findings (%d diagnostics)",
		checked, files, checked-failed, failed, totalDiags)
	if opts.Color {
		return prettyErrorColor.Sprint(verdict)
	}
	return verdict
}
