// Package mirror saves a web page together with the images, stylesheets and
// scripts it references. It coordinates fetching, parsing, reference
// rewriting and storage of a single page.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/pagesnap"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Downloader saves a page and its resources.
type Downloader struct {
	Fetcher pagesnap.Fetcher
	Parser  pagesnap.Parser
	Store   pagesnap.Store
	Logger  *slog.Logger

	// Concurrency limits parallel resource fetches within a pass.
	// Values below 1 mean one fetch at a time.
	Concurrency int

	// RateLimiter, if set, throttles resource fetches per host.
	RateLimiter pagesnap.HostLimiter
}

// Result summarizes the resources processed for a page.
type Result struct {
	Saved    int
	Failed   int
	Skipped  int
	Outcomes []Outcome
}

// Outcome is the result of localizing a single reference.
type Outcome struct {
	Kind pagesnap.ResourceKind

	// URL is the resolved absolute URL, or the raw attribute value when
	// it could not be resolved.
	URL string

	// Path is the rewritten reference on success.
	Path string

	// Skipped is set for references that were not fetched.
	Skipped bool

	Err error
}

// Download fetches rawURL, localizes its resources and saves the page.
// It returns the path of the saved index file. Failures of individual
// resources are reported in the Result; only a failure to load the page or
// to write the output is returned as an error.
func (d *Downloader) Download(ctx context.Context, rawURL string) (string, *Result, error) {
	logger := d.logger().With("run", uuid.NewString())

	if err := d.Store.Init(ctx); err != nil {
		return "", nil, fmt.Errorf("create output directory: %w", err)
	}

	doc, base, err := d.load(ctx, logger, rawURL)
	if err != nil {
		return "", nil, err
	}
	logger.Info("page loaded", "url", rawURL, "base", base.String())

	result, err := d.localize(ctx, logger, doc, base)
	if err != nil {
		return "", result, err
	}

	path, err := d.Save(ctx, doc)
	if err != nil {
		return "", result, err
	}
	logger.Info("page saved",
		"path", path,
		"saved", result.Saved,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return path, result, nil
}

// Load fetches and parses the page at rawURL. It returns the document and
// the base URL that relative references resolve against: the final URL
// after redirects, or the document's <base href> resolved against it.
//
// Errors are prefixed with "main page" and keep the underlying
// *pagesnap.FetchError in their chain.
func (d *Downloader) Load(ctx context.Context, rawURL string) (pagesnap.Document, *url.URL, error) {
	return d.load(ctx, d.logger(), rawURL)
}

func (d *Downloader) load(ctx context.Context, logger *slog.Logger, rawURL string) (pagesnap.Document, *url.URL, error) {
	resp, err := d.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("main page: %w", err)
	}

	doc, err := d.Parser.Parse(resp.Body, resp.ContentType)
	if err != nil {
		return nil, nil, fmt.Errorf("main page: %w", err)
	}

	pageURL := resp.URL
	if pageURL == "" {
		pageURL = rawURL
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("main page: %w", pagesnap.Errorf(pagesnap.EINVALID, "invalid page URL %q: %v", pageURL, err))
	}

	if href := doc.BaseHref(); href != "" {
		ref, err := url.Parse(href)
		if err != nil {
			logger.Warn("invalid base href", "href", href, "base", base.String(), "err", err)
		} else {
			base = base.ResolveReference(ref)
		}
	}

	return doc, base, nil
}

// Localize downloads every image, stylesheet and script referenced by doc
// and rewrites the references to the local copies. Images are processed
// first, then stylesheets, then scripts, each in document order.
// A reference that fails to download is logged and left untouched.
func (d *Downloader) Localize(ctx context.Context, doc pagesnap.Document, base *url.URL) (*Result, error) {
	return d.localize(ctx, d.logger(), doc, base)
}

// Save writes doc to the store and returns the path written.
func (d *Downloader) Save(ctx context.Context, doc pagesnap.Document) (string, error) {
	path, err := d.Store.SaveDocument(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("save page: %w", err)
	}
	return path, nil
}

func (d *Downloader) localize(ctx context.Context, logger *slog.Logger, doc pagesnap.Document, base *url.URL) (*Result, error) {
	result := &Result{}
	memo := newFetchMemo()

	for _, kind := range pagesnap.ResourceKinds {
		refs := doc.References(kind)
		outcomes := d.localizePass(ctx, kind, refs, base, memo)
		if err := ctx.Err(); err != nil {
			return result, err
		}

		// Rewrites and logging happen here, in document order, once every
		// fetch of the pass has finished.
		for i, o := range outcomes {
			switch {
			case o.Skipped:
				result.Skipped++
				logger.Info("resource skipped", "kind", kind, "reason", skipReason(refs[i].Value))
			case o.Err != nil:
				result.Failed++
				logger.Error("resource failed", "kind", kind, "url", o.URL, "err", o.Err)
			default:
				refs[i].Rewrite(o.Path)
				result.Saved++
				logger.Info("resource saved", "kind", kind, "url", o.URL, "path", o.Path)
			}
		}
		result.Outcomes = append(result.Outcomes, outcomes...)
	}

	return result, nil
}

// localizePass fetches and stores the resources of one kind. The returned
// outcomes are index-aligned with refs.
func (d *Downloader) localizePass(ctx context.Context, kind pagesnap.ResourceKind, refs []*pagesnap.Reference, base *url.URL, memo *fetchMemo) []Outcome {
	outcomes := make([]Outcome, len(refs))

	concurrency := d.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, ref := range refs {
		outcomes[i].Kind = kind

		value := strings.TrimSpace(ref.Value)
		if value == "" || isInline(value) {
			outcomes[i].Skipped = true
			continue
		}

		absURL, err := resolveURL(base, value)
		if err != nil {
			outcomes[i].URL = value
			outcomes[i].Err = err
			continue
		}
		outcomes[i].URL = absURL

		g.Go(func() error {
			outcomes[i].Path, outcomes[i].Err = memo.do(kind, absURL, func() (string, error) {
				return d.localizeOne(ctx, kind, absURL)
			})
			return nil
		})
	}

	// Per-item errors live in outcomes; the group never fails.
	_ = g.Wait()
	return outcomes
}

// localizeOne fetches a single resource and writes it to the store.
func (d *Downloader) localizeOne(ctx context.Context, kind pagesnap.ResourceKind, absURL string) (string, error) {
	if d.RateLimiter != nil {
		u, err := url.Parse(absURL)
		if err != nil {
			return "", err
		}
		if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	resp, err := d.Fetcher.Fetch(ctx, absURL)
	if err != nil {
		return "", err
	}

	body := resp.Body
	if !kind.Binary() {
		if body, err = decodeText(body, resp.ContentType); err != nil {
			return "", fmt.Errorf("decode %s: %w", kind, err)
		}
	}

	return d.Store.SaveResource(ctx, LocalName(kind, absURL, resp.ContentType), body)
}

func (d *Downloader) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// resolveURL resolves a reference against the base URL.
// Fragments are stripped: they are never sent to the server and would
// otherwise give the same resource several names.
func resolveURL(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", pagesnap.Errorf(pagesnap.EINVALID, "invalid resource URL %q: %v", ref, err)
	}
	resolved := base.ResolveReference(u)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved.String(), nil
}

// skipReason describes why a reference was not fetched.
func skipReason(value string) string {
	if isInline(strings.TrimSpace(value)) {
		return "inline data"
	}
	return "empty"
}

// isInline reports whether a reference carries its content inline.
func isInline(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// fetchMemo makes sure each resource is fetched at most once per run.
// Concurrent requests for the same resource share one fetch; later
// requests reuse the recorded outcome, including failures.
type fetchMemo struct {
	group singleflight.Group

	mu   sync.Mutex
	done map[string]memoEntry
}

type memoEntry struct {
	path string
	err  error
}

func newFetchMemo() *fetchMemo {
	return &fetchMemo{done: make(map[string]memoEntry)}
}

func (m *fetchMemo) do(kind pagesnap.ResourceKind, absURL string, fn func() (string, error)) (string, error) {
	key := kind.String() + " " + absURL

	m.mu.Lock()
	if e, ok := m.done[key]; ok {
		m.mu.Unlock()
		return e.path, e.err
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do(key, func() (any, error) {
		m.mu.Lock()
		e, ok := m.done[key]
		m.mu.Unlock()
		if ok {
			return e.path, e.err
		}

		path, err := fn()
		m.mu.Lock()
		m.done[key] = memoEntry{path: path, err: err}
		m.mu.Unlock()
		return path, err
	})
	path, _ := v.(string)
	return path, err
}
