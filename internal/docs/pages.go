package docs

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

var pageExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".md": true, ".mdx": true,
}

// ScanPages returns the routes of the standalone pages under dir
// (src/pages in a classic site). A missing dir yields no routes.
func ScanPages(dir string) ([]string, error) {
	routes := make([]string, 0)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, "_") || (d.IsDir() && p != dir && strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(name)
		if !pageExtensions[ext] || strings.Contains(name, ".test.") || strings.HasSuffix(name, ".d.ts") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		route := strings.TrimSuffix(filepath.ToSlash(rel), ext)
		if base := path.Base(route); base == "index" {
			route = path.Dir(route)
		}
		routes = append(routes, cleanRoute(route))
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDocs, "failed to scan pages").
			WithContext("path", dir).
			Build()
	}
	sort.Strings(routes)
	return routes, nil
}
