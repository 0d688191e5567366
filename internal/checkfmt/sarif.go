package checkfmt

import (
	"encoding/json"
	"io"
	"strings"

	"bracelint/internal/diag"
	"bracelint/internal/driver"
	"bracelint/internal/source"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifToolDriver `json:"driver"`
}

type sarifToolDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string        `json:"id"`
	Name             string        `json:"name,omitempty"`
	ShortDescription *sarifMessage `json:"shortDescription,omitempty"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif serializes check results as a single SARIF v2.1.0 run, suitable for
// CI annotation uploads. Columns are 1-based per the SARIF spec.
func Sarif(w io.Writer, results []driver.CheckResult, fs *source.FileSet, meta SarifRunMeta) error {
	var (
		sarifResults = make([]sarifResult, 0)
		rules        []sarifRule
		seenRules    = make(map[string]bool)
	)

	for _, r := range results {
		uri := displayPath(fs, r, PathModeRelative)

		for _, d := range r.Bag.Items() {
			ruleID := d.Code.ID()
			if !seenRules[ruleID] {
				seenRules[ruleID] = true
				rules = append(rules, sarifRule{
					ID:               ruleID,
					Name:             Kind(d.Code),
					ShortDescription: &sarifMessage{Text: d.Code.Title()},
				})
			}

			res := sarifResult{
				RuleID:  ruleID,
				Level:   sarifLevel(d.Severity),
				Message: sarifMessage{Text: d.Message},
			}
			loc := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: uri},
				},
			}
			if _, _, pos, ok := contextLine(fs, d.Primary, 0); ok {
				loc.PhysicalLocation.Region = &sarifRegion{
					StartLine:   pos.Line,
					StartColumn: pos.Col + 1,
				}
			}
			res.Locations = []sarifLocation{loc}
			sarifResults = append(sarifResults, res)
		}
	}

	toolName := meta.ToolName
	if toolName == "" {
		toolName = "bracelint"
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifToolDriver{
			Name:    toolName,
			Version: meta.ToolVersion,
			Rules:   rules,
		}},
		Results: sarifResults,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			CommandLine:         strings.Join(meta.InvocationArgs, " "),
			ExecutionSuccessful: len(sarifResults) == 0,
		}}
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}
