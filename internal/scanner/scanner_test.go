package scanner

import (
	"strings"
	"testing"

	"bracelint/internal/diag"
	"bracelint/internal/source"
)

func scanText(t *testing.T, text string, skipLiterals bool) (Result, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(text))
	bag := diag.NewBag(100)
	res := Scan(fs.Get(id), Options{
		Reporter:     diag.BagReporter{Bag: bag},
		SkipLiterals: skipLiterals,
	})
	return res, bag, fs
}

func position(t *testing.T, fs *source.FileSet, d diag.Diagnostic) (line, col uint32) {
	t.Helper()
	lc := fs.ResolveStart(d.Primary)
	return lc.Line, lc.Col
}

func TestScanNoBracketCharacters(t *testing.T) {
	res, bag, _ := scanText(t, "const answer = 42;\nlet x = a + b;\n", false)
	if bag.Len() != 0 {
		t.Fatalf("Expected no diagnostics, got %d", bag.Len())
	}
	if !res.Counts.Balanced() {
		t.Error("Expected balanced counts for bracket-free input")
	}
}

func TestScanBalancedNesting(t *testing.T) {
	n := 5
	text := strings.Repeat("(", n) + strings.Repeat(")", n)
	res, bag, _ := scanText(t, text, false)

	if bag.Len() != 0 {
		t.Fatalf("Expected no diagnostics, got %d", bag.Len())
	}
	if res.Counts.Round.Open != n || res.Counts.Round.Close != n {
		t.Errorf("Expected round counts %d/%d, got %d/%d",
			n, n, res.Counts.Round.Open, res.Counts.Round.Close)
	}
}

func TestScanCrossFamilyNesting(t *testing.T) {
	_, bag, _ := scanText(t, "({[]})", false)
	if bag.Len() != 0 {
		t.Fatalf("Expected no diagnostics for correct interleaving, got %d", bag.Len())
	}
}

func TestScanMismatched(t *testing.T) {
	_, bag, fs := scanText(t, "(]", false)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("Expected exactly one diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Code != diag.BrkMismatched {
		t.Errorf("Expected BrkMismatched, got %s", d.Code.ID())
	}
	line, col := position(t, fs, d)
	if line != 1 || col != 1 {
		t.Errorf("Expected position 1:1, got %d:%d", line, col)
	}
	if !strings.Contains(d.Message, "')'") {
		t.Errorf("Expected message to name the expected closer ')', got %q", d.Message)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("Expected a note pointing at the open bracket, got %d notes", len(d.Notes))
	}
	noteLC := fs.ResolveStart(d.Notes[0].Span)
	if noteLC.Line != 1 || noteLC.Col != 0 {
		t.Errorf("Expected note at 1:0, got %d:%d", noteLC.Line, noteLC.Col)
	}
}

func TestScanMismatchedConsumesTop(t *testing.T) {
	// The ']' mismatches and pops '('; the following ')' then has nothing
	// left to match.
	_, bag, _ := scanText(t, "(])", false)

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("Expected two diagnostics, got %d", len(items))
	}
	if items[0].Code != diag.BrkMismatched {
		t.Errorf("Expected first diagnostic BrkMismatched, got %s", items[0].Code.ID())
	}
	if items[1].Code != diag.BrkUnmatchedClose {
		t.Errorf("Expected second diagnostic BrkUnmatchedClose, got %s", items[1].Code.ID())
	}
}

func TestScanUnclosedOpen(t *testing.T) {
	_, bag, fs := scanText(t, "(", false)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("Expected exactly one diagnostic, got %d", len(items))
	}
	if items[0].Code != diag.BrkUnclosedOpen {
		t.Errorf("Expected BrkUnclosedOpen, got %s", items[0].Code.ID())
	}
	line, col := position(t, fs, items[0])
	if line != 1 || col != 0 {
		t.Errorf("Expected position 1:0, got %d:%d", line, col)
	}
}

func TestScanUnclosedReportedOldestFirst(t *testing.T) {
	_, bag, fs := scanText(t, "([", false)

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("Expected two diagnostics, got %d", len(items))
	}
	_, col0 := position(t, fs, items[0])
	_, col1 := position(t, fs, items[1])
	if col0 != 0 || col1 != 1 {
		t.Errorf("Expected oldest-first order (cols 0 then 1), got %d then %d", col0, col1)
	}
}

func TestScanUnmatchedClose(t *testing.T) {
	_, bag, fs := scanText(t, ")", false)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("Expected exactly one diagnostic, got %d", len(items))
	}
	if items[0].Code != diag.BrkUnmatchedClose {
		t.Errorf("Expected BrkUnmatchedClose, got %s", items[0].Code.ID())
	}
	line, col := position(t, fs, items[0])
	if line != 1 || col != 0 {
		t.Errorf("Expected position 1:0, got %d:%d", line, col)
	}
}

func TestScanOddBacktickCount(t *testing.T) {
	res, bag, _ := scanText(t, "`a`b`", false)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("Expected exactly one diagnostic, got %d", len(items))
	}
	if items[0].Code != diag.BrkOddBacktickCount {
		t.Errorf("Expected BrkOddBacktickCount, got %s", items[0].Code.ID())
	}
	if !strings.Contains(items[0].Message, "3") {
		t.Errorf("Expected message to carry the total 3, got %q", items[0].Message)
	}
	if res.Counts.Backticks != 3 {
		t.Errorf("Expected raw backtick count 3, got %d", res.Counts.Backticks)
	}
}

func TestScanEvenBackticks(t *testing.T) {
	_, bag, _ := scanText(t, "`hello` and `world`", false)
	if bag.Len() != 0 {
		t.Fatalf("Expected no diagnostics for even backticks, got %d", bag.Len())
	}
}

func TestScanMultilinePositions(t *testing.T) {
	// The ']' on line 2 mismatches the '(' opened on line 1.
	_, bag, fs := scanText(t, "fn(\n  x]\n", false)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("Expected one diagnostic, got %d", len(items))
	}
	line, col := position(t, fs, items[0])
	if line != 2 || col != 3 {
		t.Errorf("Expected position 2:3, got %d:%d", line, col)
	}
	noteLC := fs.ResolveStart(items[0].Notes[0].Span)
	if noteLC.Line != 1 || noteLC.Col != 2 {
		t.Errorf("Expected note at 1:2, got %d:%d", noteLC.Line, noteLC.Col)
	}
}

func TestScanIdempotent(t *testing.T) {
	text := ")(]`"
	_, bag1, _ := scanText(t, text, false)
	_, bag2, _ := scanText(t, text, false)

	a, b := bag1.Items(), bag2.Items()
	if len(a) != len(b) {
		t.Fatalf("Expected identical diagnostic counts, got %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Message != b[i].Message ||
			a[i].Primary != b[i].Primary {
			t.Errorf("Diagnostic %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestScanRawCountsIndependentOfNesting(t *testing.T) {
	res, bag, _ := scanText(t, ")(", false)

	if res.Counts.Round.Open != 1 || res.Counts.Round.Close != 1 {
		t.Errorf("Expected raw counts 1/1, got %d/%d",
			res.Counts.Round.Open, res.Counts.Round.Close)
	}
	if res.Counts.Balanced() != true {
		t.Error("Raw tallies of \")(\" are even; Balanced() should hold")
	}
	// ...yet the positional scan still rejects it.
	if bag.Len() != 2 {
		t.Fatalf("Expected two diagnostics, got %d", bag.Len())
	}
}

func TestScanEmptyInput(t *testing.T) {
	res, bag, _ := scanText(t, "", false)
	if bag.Len() != 0 {
		t.Errorf("Expected no diagnostics for empty input, got %d", bag.Len())
	}
	if res.Counts != (Counts{}) {
		t.Errorf("Expected zero counts, got %+v", res.Counts)
	}
}

func TestScanDeepNesting(t *testing.T) {
	depth := 2000
	text := strings.Repeat("([{", depth) + strings.Repeat("}])", depth)
	_, bag, _ := scanText(t, text, false)
	if bag.Len() != 0 {
		t.Fatalf("Expected no diagnostics for deep balanced nesting, got %d", bag.Len())
	}
}
