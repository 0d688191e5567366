package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bracelint/internal/diag"
	"bracelint/internal/project"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestCheckDirWalksAndSorts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.ts":              "(x)",
		"a.js":              "[1, 2]",
		"sub/widget.tsx":    "<div>{x}</div>",
		"sub/notes.md":      "((((",
		"node_modules/x.js": ")))",
	})

	_, results, err := CheckDir(context.Background(), root, CheckOptions{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Path >= results[i].Path {
			t.Fatalf("results not sorted: %q before %q", results[i-1].Path, results[i].Path)
		}
	}
	for _, r := range results {
		if strings.Contains(r.Path, "node_modules") || strings.HasSuffix(r.Path, ".md") {
			t.Fatalf("walk picked up excluded file %q", r.Path)
		}
		if !r.Clean() {
			t.Errorf("%s: unexpected diagnostics", r.Path)
		}
	}
}

func TestCheckDirReportsFindings(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.js":  "function f() { return (x];\n",
		"good.js": "const a = [1];\n",
	})

	_, results, err := CheckDir(context.Background(), root, CheckOptions{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	bad := results[0]
	if filepath.Base(bad.Path) != "bad.js" {
		t.Fatalf("expected bad.js first, got %q", bad.Path)
	}
	if bad.Clean() {
		t.Fatal("bad.js should report diagnostics")
	}
	if !bad.Bag.HasErrors() {
		t.Fatal("bad.js diagnostics should include an error")
	}
	if results[1].Bag.Len() != 0 {
		t.Fatal("good.js should be clean")
	}
	if got := TotalDiagnostics(results); got != bad.Bag.Len() {
		t.Fatalf("TotalDiagnostics = %d, want %d", got, bad.Bag.Len())
	}
}

func TestCheckDirEmpty(t *testing.T) {
	fileSet, results, err := CheckDir(context.Background(), t.TempDir(), CheckOptions{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if fileSet == nil {
		t.Fatal("FileSet should not be nil for an empty dir")
	}
}

func TestCheckFileLoadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.js")
	_, res := CheckFile(missing, CheckOptions{})
	if res.Clean() {
		t.Fatal("missing file should produce a diagnostic")
	}
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(items))
	}
	if items[0].Code != diag.IOLoadFileError {
		t.Fatalf("code = %s, want %s", items[0].Code.ID(), diag.IOLoadFileError.ID())
	}
	if !strings.Contains(items[0].Message, "failed to load file") {
		t.Fatalf("unexpected message %q", items[0].Message)
	}
}

func TestCheckFileCounts(t *testing.T) {
	root := writeTree(t, map[string]string{"app.ts": "f(a[0], {k: `v`})"})
	_, res := CheckFile(filepath.Join(root, "app.ts"), CheckOptions{})
	if !res.Clean() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	c := res.Counts
	if c.Round.Open != 1 || c.Round.Close != 1 {
		t.Errorf("round = %+v", c.Round)
	}
	if c.Square.Open != 1 || c.Square.Close != 1 {
		t.Errorf("square = %+v", c.Square)
	}
	if c.Curly.Open != 1 || c.Curly.Close != 1 {
		t.Errorf("curly = %+v", c.Curly)
	}
	if c.Backticks != 2 {
		t.Errorf("backticks = %d", c.Backticks)
	}
}

func TestCheckDirSkipLiteralsFromConfig(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "const s = \"(\";\n"})

	cfg := project.DefaultConfig()
	_, plain, err := CheckDir(context.Background(), root, CheckOptions{Config: cfg})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if plain[0].Clean() {
		t.Fatal("plain mode should report the quoted bracket")
	}

	cfg.Scan.SkipLiterals = true
	_, skipped, err := CheckDir(context.Background(), root, CheckOptions{Config: cfg})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if !skipped[0].Clean() {
		t.Fatalf("skip_literals mode should ignore the quoted bracket, got %v", skipped[0].Bag.Items())
	}
}

func TestCheckDirMaxDiagnosticsLimit(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": strings.Repeat(")", 10)})

	cfg := project.DefaultConfig()
	cfg.Output.MaxDiagnostics = 3
	_, results, err := CheckDir(context.Background(), root, CheckOptions{Config: cfg})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if got := results[0].Bag.Len(); got != 3 {
		t.Fatalf("bag holds %d diagnostics, want capped 3", got)
	}
}

func TestCheckDirCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "()", "b.js": "[]"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := CheckDir(ctx, root, CheckOptions{Jobs: 1})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}
