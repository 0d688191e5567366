package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"bracelint/internal/diag"
	"bracelint/internal/observ"
	"bracelint/internal/project"
	"bracelint/internal/scanner"
	"bracelint/internal/source"
)

// CheckResult holds the outcome of scanning one file.
type CheckResult struct {
	Path      string        // Path as discovered by the walk
	FileID    source.FileID // ID in the run's FileSet; zero when the load failed
	Counts    scanner.Counts
	Bag       *diag.Bag
	FromCache bool
}

// Clean reports whether the file produced no diagnostics.
func (r CheckResult) Clean() bool {
	return r.Bag == nil || r.Bag.Len() == 0
}

// CheckOptions configures a check run.
type CheckOptions struct {
	Config   project.Config
	Jobs     int        // <= 0 means GOMAXPROCS
	Cache    *DiskCache // nil disables the disk cache
	Timer    *observ.Timer
	Progress ProgressSink
}

func (o CheckOptions) config() project.Config {
	if len(o.Config.Scan.Extensions) == 0 {
		def := project.DefaultConfig()
		o.Config.Scan.Extensions = def.Scan.Extensions
		if o.Config.Scan.Exclude == nil {
			o.Config.Scan.Exclude = def.Scan.Exclude
		}
	}
	if o.Config.Output.MaxDiagnostics <= 0 {
		o.Config.Output.MaxDiagnostics = project.DefaultConfig().Output.MaxDiagnostics
	}
	return o.Config
}

// ListSourceFiles returns the sorted list of scannable files under dir,
// honoring the configured extensions and excluded directory names.
func ListSourceFiles(dir string, scan project.ScanConfig) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && scan.ExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if scan.MatchesExtension(path) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Sorted for a deterministic report order
	sort.Strings(files)
	return files, nil
}

// checkLoaded scans one already loaded file, consulting the disk cache.
func checkLoaded(fileSet *source.FileSet, fileID source.FileID, path string, opts CheckOptions) CheckResult {
	cfg := opts.config()
	file := fileSet.Get(fileID)
	skip := cfg.Scan.SkipLiterals

	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(file.Hash, &payload)
		if err == nil && hit && payloadRestorable(&payload, skip) {
			return CheckResult{
				Path:      path,
				FileID:    fileID,
				Counts:    payload.Counts,
				Bag:       payloadToBag(&payload, fileID, cfg.Output.MaxDiagnostics),
				FromCache: true,
			}
		}
		// A read error or stale payload falls through to a fresh scan.
	}

	bag := diag.NewBag(cfg.Output.MaxDiagnostics)
	res := scanner.Scan(file, scanner.Options{
		Reporter:     &diag.BagReporter{Bag: bag},
		SkipLiterals: skip,
	})

	if opts.Cache != nil {
		// Best effort; a full disk never fails the check itself.
		_ = opts.Cache.Put(file.Hash, resultToPayload(res.Counts, bag, skip))
	}

	return CheckResult{
		Path:   path,
		FileID: fileID,
		Counts: res.Counts,
		Bag:    bag,
	}
}

// loadFailure builds the result for a file that could not be read.
func loadFailure(path string, loadErr error, maxDiagnostics int) CheckResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + loadErr.Error(),
		Primary:  source.Span{}, // Empty span for I/O errors
	})
	return CheckResult{Path: path, FileID: 0, Bag: bag}
}

// CheckFile scans a single file and returns its result together with the
// FileSet the file was loaded into.
func CheckFile(path string, opts CheckOptions) (*source.FileSet, CheckResult) {
	cfg := opts.config()
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fileSet, loadFailure(path, err, cfg.Output.MaxDiagnostics)
	}
	return fileSet, checkLoaded(fileSet, fileID, path, opts)
}

// CheckDir scans all matching files under dir in parallel.
// The returned results are ordered by path.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	cfg := opts.config()
	timer := opts.Timer

	walkPhase := -1
	if timer != nil {
		walkPhase = timer.Begin("walk")
	}
	files, err := ListSourceFiles(dir, cfg.Scan)
	if timer != nil {
		timer.End(walkPhase, pluralFiles(len(files)))
	}
	if err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// Preload everything up front; the FileSet is not written to after this,
	// so the scan goroutines can read it without a lock.
	loadPhase := -1
	if timer != nil {
		loadPhase = timer.Begin("load")
	}
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	if timer != nil {
		timer.End(loadPhase, "")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Result slots are indexed per file, so no mutex is needed.
	results := make([]CheckResult, len(files))

	scanPhase := -1
	if timer != nil {
		scanPhase = timer.Begin("scan")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = loadFailure(path, loadErr, cfg.Output.MaxDiagnostics)
				publish(opts.Progress, ScanEvent{Path: path, Status: StatusError, Diags: results[i].Bag.Len()})
				return nil
			}

			publish(opts.Progress, ScanEvent{Path: path, Status: StatusScanning})
			results[i] = checkLoaded(fileSet, fileIDs[path], path, opts)
			publish(opts.Progress, ScanEvent{
				Path:   path,
				Status: statusForResult(results[i]),
				Diags:  results[i].Bag.Len(),
			})
			return nil
		})
	}

	err = g.Wait()
	if timer != nil {
		timer.End(scanPhase, "")
	}
	if err != nil {
		return fileSet, results, err
	}

	return fileSet, results, nil
}

// TotalDiagnostics sums the diagnostics across all results.
func TotalDiagnostics(results []CheckResult) int {
	total := 0
	for _, r := range results {
		if r.Bag != nil {
			total += r.Bag.Len()
		}
	}
	return total
}

// MergeBags collects every result's diagnostics into one sorted bag.
func MergeBags(results []CheckResult) *diag.Bag {
	merged := diag.NewBag(1)
	for _, r := range results {
		if r.Bag != nil {
			merged.Merge(r.Bag)
		}
	}
	merged.Sort()
	return merged
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
