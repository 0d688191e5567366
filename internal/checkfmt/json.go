package checkfmt

import (
	"encoding/json"
	"io"

	"bracelint/internal/driver"
	"bracelint/internal/observ"
	"bracelint/internal/scanner"
	"bracelint/internal/source"
)

// DiagnosticJSON is one finding in the per-file report.
type DiagnosticJSON struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
	Context  string `json:"context,omitempty"`
	Message  string `json:"message"`
}

// FileReportJSON is the report for one scanned file.
type FileReportJSON struct {
	Path        string           `json:"path"`
	Counts      scanner.Counts   `json:"counts"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// SummaryJSON aggregates the run.
type SummaryJSON struct {
	Checked     int `json:"checked"`
	Clean       int `json:"clean"`
	Failed      int `json:"failed"`
	Diagnostics int `json:"diagnostics"`
}

// ReportJSON is the root object of the JSON output.
type ReportJSON struct {
	Files   []FileReportJSON `json:"files"`
	Summary SummaryJSON      `json:"summary"`
	Timings *observ.Report   `json:"timings,omitempty"`
}

// BuildReport assembles the JSON output structure without serializing it.
func BuildReport(results []driver.CheckResult, fs *source.FileSet, opts JSONOpts) ReportJSON {
	report := ReportJSON{
		Files:   make([]FileReportJSON, 0, len(results)),
		Timings: opts.Timings,
	}
	report.Summary.Checked = len(results)

	for _, r := range results {
		fr := FileReportJSON{
			Path:        displayPath(fs, r, opts.PathMode),
			Counts:      r.Counts,
			Diagnostics: make([]DiagnosticJSON, 0, r.Bag.Len()),
		}
		for _, d := range r.Bag.Items() {
			dj := DiagnosticJSON{
				Kind:     Kind(d.Code),
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
			}
			if text, _, pos, ok := contextLine(fs, d.Primary, opts.ContextWidth); ok {
				dj.Line = pos.Line
				dj.Column = pos.Col
				dj.Context = text
			}
			fr.Diagnostics = append(fr.Diagnostics, dj)
		}
		if len(fr.Diagnostics) > 0 {
			report.Summary.Failed++
			report.Summary.Diagnostics += len(fr.Diagnostics)
		} else {
			report.Summary.Clean++
		}
		report.Files = append(report.Files, fr)
	}

	return report
}

// JSON serializes check results following the per-file report schema.
func JSON(w io.Writer, results []driver.CheckResult, fs *source.FileSet, opts JSONOpts) error {
	report := BuildReport(results, fs, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
