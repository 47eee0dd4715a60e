package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/pyramath/internal/config"
)

// FS loads catalog YAML files from a directory.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func isCatalogFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Load merges every *.yaml and *.yml file in the directory in name order
// over the default catalog. A missing or empty directory yields the default.
func (s *FS) Load(ctx context.Context) (*config.Catalog, error) {
	out := config.Default()
	if s.dir == "" {
		return out, nil
	}
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !isCatalogFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := config.Load(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
		out.Merge(c)
	}
	return out, nil
}
