package linkcheck

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/docs"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
)

// pathnameScheme marks routes the generator must not resolve.
const pathnameScheme = "pathname://"

// Service checks every link of a site against its doc inventory, known
// routes and, when enabled, the network.
type Service struct {
	site      *config.Site
	inventory *docs.Inventory
	pages     []string
	external  *ExternalChecker
	publisher Publisher
	recorder  metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPages adds standalone page routes (see docs.ScanPages).
func WithPages(routes []string) Option {
	return func(s *Service) { s.pages = routes }
}

// WithExternalChecker enables verification of absolute hrefs.
func WithExternalChecker(c *ExternalChecker) Option {
	return func(s *Service) { s.external = c }
}

// WithPublisher publishes an event for each reported finding.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		s.recorder = r
		if s.external != nil {
			s.external.recorder = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a checker for site. inv may be empty but not nil.
func NewService(site *config.Site, inv *docs.Inventory, opts ...Option) *Service {
	s := &Service{
		site:      site,
		inventory: inv,
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.external != nil {
		s.external.recorder = s.recorder
	}
	return s
}

type externalRef struct {
	source string
	url    string
}

// Check runs every check. The returned error is non-nil when a finding falls
// under the throw policy or the run was canceled; the Result is returned in both cases.
func (s *Service) Check(ctx context.Context) (*Result, error) {
	res := &Result{BuildID: uuid.NewString()}
	linkPolicy := s.site.OnBrokenLinks
	mdPolicy := s.site.OnBrokenMarkdownLinks
	routes := s.knownRoutes()

	var externals []externalRef
	add := func(f Finding) {
		res.Findings = append(res.Findings, f)
	}

	for i, item := range s.site.ThemeConfig.Navbar.Items {
		source := "themeConfig.navbar.items[" + itoa(i) + "]"
		res.Checked++
		switch item.Kind() {
		case config.NavItemDoc:
			if reason, ok := s.resolveDoc(item.DocID); !ok {
				add(Finding{Kind: KindDoc, Source: source, Target: item.DocID, Reason: reason, Policy: linkPolicy})
			}
		case config.NavItemRoute:
			if reason, ok := s.resolveRoute(item.To, routes); !ok {
				add(Finding{Kind: KindRoute, Source: source, Target: item.To, Reason: reason, Policy: linkPolicy})
			}
		case config.NavItemHref:
			if isHTTP(item.Href) {
				externals = append(externals, externalRef{source: source, url: item.Href})
			}
		}
	}
	for g, group := range s.site.ThemeConfig.Footer.Links {
		for i, link := range group.Items {
			source := "themeConfig.footer.links[" + itoa(g) + "].items[" + itoa(i) + "]"
			res.Checked++
			switch link.Kind() {
			case config.NavItemRoute:
				if reason, ok := s.resolveRoute(link.To, routes); !ok {
					add(Finding{Kind: KindRoute, Source: source, Target: link.To, Reason: reason, Policy: linkPolicy})
				}
			case config.NavItemHref:
				if isHTTP(link.Href) {
					externals = append(externals, externalRef{source: source, url: link.Href})
				}
			}
		}
	}

	for _, doc := range s.inventory.Docs() {
		// A reference definition and each of its uses carry the same destination.
		seen := make(map[string]bool, len(doc.Links))
		for _, link := range doc.Links {
			if seen[link.Destination] {
				continue
			}
			seen[link.Destination] = true
			switch {
			case link.IsExternal():
				if isHTTP(link.Destination) {
					externals = append(externals, externalRef{source: doc.Path, url: link.Destination})
				}
			case link.IsMarkdownFile():
				res.Checked++
				if target, ok := s.inventory.ResolveMarkdownLink(doc.Path, link.Destination); !ok {
					add(Finding{Kind: KindMarkdown, Source: doc.Path, Target: link.Destination, Reason: "markdown file not found", Policy: mdPolicy})
				} else if target.Draft && !doc.Draft {
					add(Finding{Kind: KindMarkdown, Source: doc.Path, Target: link.Destination, Reason: reasonDraft, Policy: mdPolicy})
				}
			case strings.HasPrefix(link.Destination, "/") && link.Kind != docs.LinkKindImage:
				res.Checked++
				if reason, ok := s.resolveRoute(link.Destination, routes); !ok {
					add(Finding{Kind: KindRoute, Source: doc.Path, Target: link.Destination, Reason: reason, Policy: linkPolicy})
				}
			}
		}
	}

	if s.external != nil && linkPolicy != config.PolicyIgnore && len(externals) > 0 {
		findings, err := s.checkExternal(ctx, externals, linkPolicy)
		res.Checked += len(externals)
		if err != nil {
			return res, ferrors.WrapError(err, ferrors.CategoryRuntime, "external link check canceled").Build()
		}
		res.Findings = append(res.Findings, findings...)
	}

	s.report(ctx, res)
	return res, res.Err()
}

func (s *Service) checkExternal(ctx context.Context, refs []externalRef, policy config.BrokenLinkPolicy) ([]Finding, error) {
	urls := make([]string, 0, len(refs))
	for _, r := range refs {
		urls = append(urls, r.url)
	}
	outcomes, err := s.external.CheckAll(ctx, urls)
	if err != nil {
		return nil, err
	}
	var findings []Finding
	for _, r := range refs {
		out := outcomes[r.url]
		if out.OK {
			continue
		}
		findings = append(findings, Finding{
			Kind: KindExternal, Source: r.source, Target: r.url,
			Reason: out.Err, Status: out.Status, Policy: policy,
		})
	}
	return findings, nil
}

func (s *Service) report(ctx context.Context, res *Result) {
	for _, f := range res.Findings {
		if !report(s.logger, f) {
			continue
		}
		s.recorder.IncLinkFinding(string(f.Kind), string(f.Policy))
		if s.publisher == nil {
			continue
		}
		event := &BrokenLinkEvent{
			BuildID:   res.BuildID,
			Site:      s.site.SiteURL(),
			Kind:      f.Kind,
			Source:    f.Source,
			Target:    f.Target,
			Reason:    f.Reason,
			Status:    f.Status,
			Policy:    string(f.Policy),
			Timestamp: s.now().UTC(),
		}
		if err := s.publisher.PublishBrokenLink(ctx, event); err != nil {
			s.logger.Warn("Failed to publish broken link event", logfields.Link(f.Target), logfields.Error(err))
		}
	}
	s.logger.Info("Link check complete",
		logfields.BuildID(res.BuildID),
		logfields.Count(res.Checked),
		slog.Int("findings", len(res.Findings)))
}

// knownRoutes returns every route the site will serve, without baseUrl.
func (s *Service) knownRoutes() map[string]bool {
	known := make(map[string]bool)
	if cp := s.site.Preset(config.PresetClassic); cp != nil && cp.Options.Docs.Enabled {
		for _, r := range s.inventory.Routes(cp.Options.Docs.Options.RouteBasePath) {
			known[r] = true
		}
	}
	for _, r := range s.pages {
		known[normalizeRoute(r, s.site.BaseURL)] = true
	}
	for _, r := range s.site.Tool.LinkCheck.KnownRoutes {
		known[normalizeRoute(r, s.site.BaseURL)] = true
	}
	return known
}

const reasonDraft = "doc is a draft"

// resolveDoc reports whether a published doc with id exists. Drafts get no
// page in a production build.
func (s *Service) resolveDoc(id string) (string, bool) {
	doc, ok := s.inventory.Doc(id)
	switch {
	case !ok:
		return "doc id not found", false
	case doc.Draft:
		return reasonDraft, false
	}
	return "", true
}

// resolveRoute reports whether target is served by the site.
func (s *Service) resolveRoute(target string, known map[string]bool) (string, bool) {
	if strings.HasPrefix(target, pathnameScheme) {
		return "", true
	}
	route := normalizeRoute(target, s.site.BaseURL)
	if known[route] {
		return "", true
	}
	if cp := s.site.Preset(config.PresetClassic); cp != nil && cp.Options.Blog.Enabled {
		base := normalizeRoute(cp.Options.Blog.Options.RouteBasePath, "/")
		if route == base || strings.HasPrefix(route, base+"/") {
			return "", true
		}
	}
	return "route not found", false
}

// normalizeRoute strips baseUrl, query, fragment and trailing slash, and
// makes the route absolute.
func normalizeRoute(r, baseURL string) string {
	if i := strings.IndexAny(r, "?#"); i >= 0 {
		r = r[:i]
	}
	if !strings.HasPrefix(r, "/") {
		r = "/" + r
	}
	if baseURL != "" && baseURL != "/" && strings.HasPrefix(r, baseURL) {
		r = "/" + strings.TrimPrefix(r, baseURL)
	}
	if len(r) > 1 {
		r = strings.TrimSuffix(r, "/")
	}
	return r
}

func isHTTP(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func itoa(i int) string { return strconv.Itoa(i) }

// SortFindings orders findings by kind, source and target for stable output.
func SortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Kind != fs[j].Kind {
			return fs[i].Kind < fs[j].Kind
		}
		if fs[i].Source != fs[j].Source {
			return fs[i].Source < fs[j].Source
		}
		return fs[i].Target < fs[j].Target
	})
}
