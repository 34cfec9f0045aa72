// Package docs builds an inventory of the Markdown documentation of a site:
// doc ids, the routes the classic preset generates for them, and the links
// they contain. Nothing is rendered.
package docs

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/inful/mdfp"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// Doc is one Markdown document.
type Doc struct {
	// ID is the doc id used by navbar doc items.
	ID string
	// Path is the slash-separated path relative to the docs root.
	Path        string
	Title       string
	Slug        string
	Draft       bool
	Fingerprint string
	Links       []Link
}

// Route returns the URL path of the doc under routeBasePath, without baseUrl.
func (d Doc) Route(routeBasePath string) string {
	base := "/" + strings.Trim(routeBasePath, "/")
	if base == "/" {
		base = ""
	}
	if d.Slug != "" {
		if strings.HasPrefix(d.Slug, "/") {
			return cleanRoute(base + d.Slug)
		}
		return cleanRoute(base + "/" + path.Join(path.Dir(idPath(d.Path)), d.Slug))
	}
	return cleanRoute(base + "/" + routeID(d.ID))
}

// Inventory is the set of docs found under a docs root.
type Inventory struct {
	Root   string
	docs   []Doc
	byID   map[string]int
	byPath map[string]int
}

var numberPrefix = regexp.MustCompile(`^\d+[-_.]`)

// Scan walks root for .md and .mdx files. A missing root yields an empty inventory.
func Scan(root string) (*Inventory, error) {
	inv := &Inventory{Root: root, byID: map[string]int{}, byPath: map[string]int{}}

	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Docs directory not found; inventory is empty", logfields.Path(root))
		return inv, nil
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(name)
		if (ext != ".md" && ext != ".mdx") || strings.HasPrefix(name, "_") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		doc, err := readDoc(p, filepath.ToSlash(rel))
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryDocs, "failed to read doc").
				WithContext("path", p).
				Build()
		}
		return inv.add(doc)
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryDocs, "failed to scan docs").
			WithContext("path", root).
			Build()
	}
	slog.Debug("Scanned docs", logfields.Path(root), logfields.Count(len(inv.docs)))
	return inv, nil
}

// NewInventory builds an inventory from docs already in memory.
func NewInventory(root string, docs ...Doc) (*Inventory, error) {
	inv := &Inventory{Root: root, byID: map[string]int{}, byPath: map[string]int{}}
	for _, d := range docs {
		if err := inv.add(d); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func (inv *Inventory) add(doc Doc) error {
	if prev, ok := inv.byID[doc.ID]; ok {
		return ferrors.DocsError("duplicate doc id").
			WithContext("id", doc.ID).
			WithContext("path", doc.Path).
			WithContext("other", inv.docs[prev].Path).
			Build()
	}
	inv.docs = append(inv.docs, doc)
	inv.byID[doc.ID] = len(inv.docs) - 1
	inv.byPath[doc.Path] = len(inv.docs) - 1
	return nil
}

func readDoc(abs, rel string) (Doc, error) {
	content, err := os.ReadFile(abs)
	if err != nil {
		return Doc{}, err
	}
	fm, front, body, err := parseFrontMatter(content)
	if err != nil {
		return Doc{}, err
	}
	doc := Doc{
		ID:          docID(rel, fm.ID),
		Path:        rel,
		Title:       fm.Title,
		Slug:        fm.Slug,
		Draft:       fm.Draft,
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(front), "\n"), string(body)),
		Links:       ExtractLinks(body),
	}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	return doc, nil
}

// docID derives the id from the relative path: ordering prefixes are stripped
// from every segment and a front matter id replaces the file name.
func docID(rel, frontID string) string {
	dir, file := path.Split(idPath(rel))
	if frontID != "" {
		file = frontID
	}
	return strings.TrimPrefix(path.Join(dir, file), "/")
}

// idPath strips the extension and ordering prefixes from a relative doc path.
func idPath(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	segs := strings.Split(rel, "/")
	for i, s := range segs {
		if stripped := numberPrefix.ReplaceAllString(s, ""); stripped != "" {
			segs[i] = stripped
		}
	}
	return strings.Join(segs, "/")
}

// routeID collapses index and README docs onto their directory.
func routeID(id string) string {
	dir, file := path.Split(id)
	if strings.EqualFold(file, "index") || strings.EqualFold(file, "readme") {
		return strings.TrimSuffix(dir, "/")
	}
	return id
}

func cleanRoute(r string) string {
	return path.Clean("/" + r)
}

func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// Docs returns the docs sorted by path.
func (inv *Inventory) Docs() []Doc {
	out := append([]Doc(nil), inv.docs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len is the number of docs.
func (inv *Inventory) Len() int { return len(inv.docs) }

// HasDoc reports whether a doc with id exists. An id ending in /index or
// /README also matches its collapsed directory form.
func (inv *Inventory) HasDoc(id string) bool {
	_, ok := inv.Doc(id)
	return ok
}

// Doc looks up a doc by id.
func (inv *Inventory) Doc(id string) (Doc, bool) {
	id = strings.Trim(id, "/")
	if i, ok := inv.byID[id]; ok {
		return inv.docs[i], true
	}
	for _, d := range inv.docs {
		if routeID(d.ID) == id && routeID(d.ID) != d.ID {
			return d, true
		}
	}
	return Doc{}, false
}

// DocByPath looks up a doc by its slash-separated path relative to the root.
func (inv *Inventory) DocByPath(rel string) (Doc, bool) {
	i, ok := inv.byPath[path.Clean(rel)]
	if !ok {
		return Doc{}, false
	}
	return inv.docs[i], true
}

// ResolveMarkdownLink resolves a relative .md/.mdx destination found in the
// doc at from. ok is false when the target is not in the inventory.
func (inv *Inventory) ResolveMarkdownLink(from, dest string) (Doc, bool) {
	target := stripFragment(dest)
	var rel string
	if strings.HasPrefix(target, "/") {
		rel = strings.TrimPrefix(path.Clean(target), "/")
	} else {
		rel = path.Join(path.Dir(from), target)
	}
	if decoded, err := url.PathUnescape(rel); err == nil {
		rel = decoded
	}
	return inv.DocByPath(rel)
}

// Routes returns the sorted routes of all non-draft docs.
func (inv *Inventory) Routes(routeBasePath string) []string {
	out := make([]string, 0, len(inv.docs))
	for _, d := range inv.docs {
		if d.Draft {
			continue
		}
		out = append(out, d.Route(routeBasePath))
	}
	sort.Strings(out)
	return out
}
