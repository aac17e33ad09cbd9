package xmldoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Expander rewrites macro tokens in textual values. *macro.Expander
// satisfies it.
type Expander interface {
	Expand(s string) string
}

// MalformedConfigurationError reports a descriptor file that exists but
// cannot be read or parsed. It is fatal to the load unit that owns the file.
type MalformedConfigurationError struct {
	Path string
	Err  error
}

func (e *MalformedConfigurationError) Error() string {
	return fmt.Sprintf("malformed configuration file %s: %v", e.Path, e.Err)
}

func (e *MalformedConfigurationError) Unwrap() error {
	return e.Err
}

type cacheKey struct {
	path    string
	size    int64
	modTime time.Time
}

// Loader reads descriptor files. Parsed, unexpanded trees are kept in an LRU
// keyed by path, size and modification time so a long-lived process does not
// re-parse unchanged files on every project load. Cached trees are never
// handed out; callers always receive an expanded copy.
type Loader struct {
	cache *lru.Cache[cacheKey, *Element]
}

// NewLoader creates a Loader. A cacheSize of zero or less disables caching.
func NewLoader(cacheSize int) (*Loader, error) {
	l := &Loader{}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, *Element](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create document cache: %w", err)
		}
		l.cache = cache
	}
	return l, nil
}

// LoadRootElement reads path and returns its root element with exp applied
// to all attribute values and text. exp may be nil.
func (l *Loader) LoadRootElement(path string, exp Expander) (*Element, error) {
	raw, err := l.load(path)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return raw.Expand(nil), nil
	}
	return raw.Expand(exp.Expand), nil
}

// CacheLen reports the number of cached documents.
func (l *Loader) CacheLen() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}

func (l *Loader) load(path string) (*Element, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &MalformedConfigurationError{Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &MalformedConfigurationError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &MalformedConfigurationError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	key := cacheKey{path: abs, size: info.Size(), modTime: info.ModTime()}
	if l.cache != nil {
		if el, ok := l.cache.Get(key); ok {
			return el, nil
		}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &MalformedConfigurationError{Path: path, Err: err}
	}
	root, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedConfigurationError{Path: path, Err: err}
	}

	if l.cache != nil {
		l.cache.Add(key, root)
	}
	return root, nil
}
