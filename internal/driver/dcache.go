package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tuplegen/internal/config"
	"tuplegen/internal/diag"
	"tuplegen/internal/expand"
	"tuplegen/internal/source"
	"tuplegen/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache хранит результаты раскрытия файлов на диске по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached expansion of one file. Spans are stored as byte
// offsets and re-attached to the file id of the current run.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Output      []byte
	Changed     bool
	Invocations []cachedInvocation
	Diagnostics []cachedDiagnostic
}

type cachedSpan struct {
	Valid      bool
	Start, End uint32
}

type cachedInvocation struct {
	Span  cachedSpan
	Mode  uint8
	Arity int
	OK    bool
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Span     cachedSpan
	Notes    []cachedNote
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "expansions", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	tmp := f.Name()
	// после Rename файла уже нет, ошибка Remove ожидаема
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
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
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey: H(schema || version || generator settings || output settings || content).
func cacheKey(f *source.File, cfg config.Config) Digest {
	h := sha256.New()
	settings, err := msgpack.Marshal([]any{diskCacheSchemaVersion, version.Version, cfg.Generator, cfg.Output})
	if err != nil {
		// настройки из простых полей всегда сериализуются
		panic(err)
	}
	_, _ = h.Write(settings)
	_, _ = h.Write(f.Hash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func packSpan(sp source.Span) cachedSpan {
	return cachedSpan{Valid: sp.IsValid(), Start: sp.Start, End: sp.End}
}

func (s cachedSpan) unpack(id source.FileID) source.Span {
	if !s.Valid {
		return source.NoSpan
	}
	return source.Span{File: id, Start: s.Start, End: s.End}
}

func resultToPayload(res *FileResult) *DiskPayload {
	p := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Output:  res.Output,
		Changed: res.Changed,
	}
	for _, inv := range res.Invocations {
		p.Invocations = append(p.Invocations, cachedInvocation{
			Span:  packSpan(inv.Span),
			Mode:  uint8(inv.Mode),
			Arity: inv.Arity,
			OK:    inv.OK,
		})
	}
	for _, d := range res.Bag.Items() {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Span:     packSpan(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: packSpan(n.Span), Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore fills res from a cached payload.
func (p *DiskPayload) restore(res *FileResult) {
	res.Output = p.Output
	res.Changed = p.Changed
	for _, inv := range p.Invocations {
		res.Invocations = append(res.Invocations, InvocationResult{
			Span:  inv.Span.unpack(res.FileID),
			Mode:  expand.Mode(inv.Mode),
			Arity: inv.Arity,
			OK:    inv.OK,
		})
	}
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Span.unpack(res.FileID), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(n.Span.unpack(res.FileID), n.Msg)
		}
		res.Bag.Add(d)
	}
}
