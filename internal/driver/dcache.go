package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bracelint/internal/diag"
	"bracelint/internal/scanner"
	"bracelint/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores scan results keyed by content hash on disk, so unchanged
// files are not rescanned across runs.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is the serialized form of a diagnostic note.
type CachedNote struct {
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

// CachedDiagnostic is the serialized form of one diagnostic. Spans are
// stored as byte offsets and rebound to the freshly loaded file on read.
type CachedDiagnostic struct {
	Severity uint8        `msgpack:"severity"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"message"`
	Start    uint32       `msgpack:"start"`
	End      uint32       `msgpack:"end"`
	Notes    []CachedNote `msgpack:"notes,omitempty"`
}

// DiskPayload stores the cached outcome of scanning one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16 `msgpack:"schema"`

	// SkipLiterals records the scan mode the payload was produced under.
	// A payload from the other mode is a cache miss.
	SkipLiterals bool `msgpack:"skip_literals"`

	Counts scanner.Counts     `msgpack:"counts"`
	Diags  []CachedDiagnostic `msgpack:"diags,omitempty"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location
// (XDG_CACHE_HOME or ~/.cache, under the given app name).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory "files" keeps the cache root readable and easy to purge.
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", removeErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// resultToPayload converts a scan outcome into its cacheable form.
func resultToPayload(counts scanner.Counts, bag *diag.Bag, skipLiterals bool) *DiskPayload {
	payload := &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		SkipLiterals: skipLiterals,
		Counts:       counts,
	}
	items := bag.Items()
	if len(items) == 0 {
		return payload
	}
	payload.Diags = make([]CachedDiagnostic, len(items))
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diags[i] = cd
	}
	return payload
}

// payloadRestorable reports whether a payload can serve the given scan mode.
func payloadRestorable(payload *DiskPayload, skipLiterals bool) bool {
	return payload != nil &&
		payload.Schema == diskCacheSchemaVersion &&
		payload.SkipLiterals == skipLiterals
}

// payloadToBag rebuilds diagnostics from a payload, rebinding spans to the
// freshly loaded file.
func payloadToBag(payload *DiskPayload, fileID source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: fileID, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
	return bag
}
