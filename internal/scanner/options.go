package scanner

import (
	"bracelint/internal/diag"
)

// Options configures one scan.
type Options struct {
	// Reporter receives every diagnostic the scan produces. A nil reporter
	// silently discards them (raw counts are still computed).
	Reporter diag.Reporter

	// SkipLiterals enables the literal-aware mode: the contents of string
	// literals, template literals and comments are excluded from bracket
	// matching, so intentionally lone brackets inside them stay silent.
	SkipLiterals bool
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}
