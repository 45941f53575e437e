package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"smartdocs/internal/common/fsutil"
	"smartdocs/pkg/types"
)

// Source is a document read from disk, ready to be imported.
type Source struct {
	Path        string
	Contents    []byte
	ContentType types.ContentType
	Format      types.DocumentFormat
}

var importableExt = map[string]bool{
	".json": true, ".xml": true, ".wadl": true, ".yml": true, ".yaml": true,
}

// LoadFile reads one document and detects its content type and format.
func LoadFile(path string) (Source, error) {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return Source{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", p, err)
	}
	ct := DetectContentType(p, b)
	return Source{Path: p, Contents: b, ContentType: ct, Format: DetectFormat(ct, b)}, nil
}

// LoadDir scans a directory (non-recursive) for importable documents.
// Files are returned sorted by name; other extensions are skipped.
func LoadDir(dir string) ([]Source, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !importableExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	out := make([]Source, 0, len(names))
	for _, n := range names {
		src, err := LoadFile(filepath.Join(abs, n))
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}
