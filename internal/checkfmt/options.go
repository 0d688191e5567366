package checkfmt

import "bracelint/internal/observ"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) mode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of check results.
type PrettyOpts struct {
	Color        bool
	PathMode     PathMode
	ContextWidth int // max rendered width of a context line, 0 means unlimited
	ShowNotes    bool
	ShowCounts   bool
}

// JSONOpts configures JSON output of check results.
type JSONOpts struct {
	PathMode     PathMode
	ContextWidth int
	Timings      *observ.Report
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
