package checkfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"bracelint/internal/diag"
	"bracelint/internal/driver"
	"bracelint/internal/source"
)

// Kind is the stable diagnostic kind name used across output formats.
func Kind(code diag.Code) string {
	switch code {
	case diag.BrkUnmatchedClose:
		return "UnmatchedClose"
	case diag.BrkMismatched:
		return "Mismatched"
	case diag.BrkUnclosedOpen:
		return "UnclosedOpen"
	case diag.BrkOddBacktickCount:
		return "OddBacktickCount"
	case diag.IOLoadFileError:
		return "FileReadError"
	}
	return "Info"
}

// displayPath renders a result's path via its File when it loaded, falling
// back to the walk path for files that could not be read.
func displayPath(fs *source.FileSet, r driver.CheckResult, pm PathMode) string {
	if fs != nil && r.FileID != 0 {
		if f := fs.Get(r.FileID); f != nil {
			return f.FormatPath(pm.mode(), fs.BaseDir())
		}
	}
	if pm == PathModeAbsolute {
		if abs, err := source.AbsolutePath(r.Path); err == nil {
			return abs
		}
	}
	return r.Path
}

// contextLine extracts the source line under a span, with the caret position
// as a display column. ok is false when the span cannot be resolved, e.g.
// I/O failures with an empty span.
func contextLine(fs *source.FileSet, span source.Span, width int) (text string, caret int, pos source.LineCol, ok bool) {
	if fs == nil {
		return "", 0, source.LineCol{}, false
	}
	f := fs.Get(span.File)
	if f == nil {
		return "", 0, source.LineCol{}, false
	}
	pos = fs.ResolveStart(span)
	line := f.GetLine(pos.Line)
	col := int(pos.Col)
	if col > len(line) {
		col = len(line)
	}

	// Tabs render as one cell so the caret stays aligned.
	text = strings.ReplaceAll(line, "\t", " ")
	caret = runewidth.StringWidth(text[:col])
	if width > 0 && runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "...")
		if caret >= width {
			caret = -1 // caret fell off the truncated line
		}
	}
	return text, caret, pos, true
}
