// Package inbox watches a directory of saved web pages and clips each page
// that lands there.
package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/pevans/recipenote/recipe"
)

// DefaultDebounce is how long a file must stay quiet before it is handled.
// Browsers write saved pages in several chunks.
const DefaultDebounce = 500 * time.Millisecond

// Handler processes one saved page.
type Handler func(ctx context.Context, page *recipe.Page, path string) error

// Watcher delivers saved pages dropped into a directory to a Handler.
type Watcher struct {
	dir      string
	handle   Handler
	logger   zerolog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	done    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets the quiet period before a file is handled.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for dir.
func New(dir string, handle Handler, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		handle:   handle,
		logger:   zerolog.Nop(),
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		ready:    make(chan string, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Handler failures are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create inbox directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	done := make(chan struct{})
	w.mu.Lock()
	w.done = done
	w.mu.Unlock()
	defer close(done)
	defer w.stopTimers()

	w.logger.Info().Str("dir", w.dir).Msg("watching inbox")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")

		case path := <-w.ready:
			w.process(ctx, path)
		}
	}
}

// handleEvent schedules a saved page for processing and reports whether the
// event was accepted.
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	if !Accepts(ev.Name) {
		return false
	}

	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return false
	}

	w.schedule(ev.Name)
	return true
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		done := w.done
		w.mu.Unlock()

		// Run may already have returned with a full queue
		select {
		case <-done:
			return
		default:
		}
		select {
		case w.ready <- path:
		case <-done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	page, err := LoadPage(path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable page")
		return
	}

	if err := w.handle(ctx, page, path); err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("failed to clip page")
		return
	}

	w.logger.Debug().Str("path", path).Str("source", page.URL).Msg("clipped page")
}

// Accepts reports whether path names a saved page: an .html or .htm file that
// is not hidden.
func Accepts(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

// LoadPage parses a saved page and resolves the URL it was saved from.
func LoadPage(path string) (*recipe.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	page, err := recipe.NewPage(f, "")
	if err != nil {
		return nil, err
	}

	page.URL = SourceURL(page, path)
	return page, nil
}

var savedFromURL = regexp.MustCompile(`saved from url=\(\d+\)(\S+)`)

// SourceURL picks the address a saved page came from: its canonical link,
// then og:url, then the comment browsers stamp on saved pages. Without any of
// those it falls back to a file URL for path.
func SourceURL(page *recipe.Page, path string) string {
	if href, ok := page.Doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		return strings.TrimSpace(href)
	}

	if content, ok := page.Doc.Find(`meta[property="og:url"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		return strings.TrimSpace(content)
	}

	for _, n := range page.Doc.Nodes {
		if u := savedFromComment(n); u != "" {
			return u
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

func savedFromComment(n *html.Node) string {
	if n.Type == html.CommentNode {
		if m := savedFromURL.FindStringSubmatch(n.Data); m != nil {
			return m[1]
		}
		return ""
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// The stamp sits before <html> or at the top of <head>
		if c.Type == html.ElementNode && c.Data == "body" {
			continue
		}
		if u := savedFromComment(c); u != "" {
			return u
		}
	}
	return ""
}
