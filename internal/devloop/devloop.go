// Package devloop implements the development-mode rebuild loop: file
// change events flow onto one channel, a single coordinator debounces
// bursts into rebuild cycles, and an in-flight guard keeps at most one
// cycle running at a time.
package devloop

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmose/bpblog/internal/config"
	"github.com/dmose/bpblog/internal/post"
)

// Kind says what a rebuild cycle has to do.
type Kind int

const (
	// KindSite regenerates the site only.
	KindSite Kind = iota
	// KindTool recompiles the tool first, then regenerates the site.
	KindTool
)

func (k Kind) String() string {
	if k == KindTool {
		return "tool"
	}
	return "site"
}

// Event is one relevant file change.
type Event struct {
	Kind Kind
	Path string
}

// Loop owns the dev-mode rebuild state: the event channel, the
// debounce timer, and the in-flight flag. Build and compile steps are
// injected so the loop can be exercised without a real site.
type Loop struct {
	cfg      config.Config
	log      *slog.Logger
	build    func(context.Context) error
	compile  func(context.Context) error
	events   chan Event
	inFlight atomic.Bool
}

func New(cfg config.Config, log *slog.Logger, build, compile func(context.Context) error) *Loop {
	return &Loop{
		cfg:     cfg,
		log:     log,
		build:   build,
		compile: compile,
		events:  make(chan Event, 64),
	}
}

// Notify queues a change event for the coordinator. Events are
// dropped if the buffer is full; the debounce collapses bursts
// anyway, so a dropped event within a burst is indistinguishable
// from a coalesced one.
func (l *Loop) Notify(ev Event) {
	select {
	case l.events <- ev:
	default:
	}
}

// Run is the coordinator. Each incoming event rearms the debounce
// timer, so within the debounce window only the latest event
// survives; when the timer fires, one rebuild cycle starts for it.
// Run returns when ctx is cancelled, without waiting for an in-flight
// cycle to finish.
func (l *Loop) Run(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-l.events:
			pending = ev
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(l.cfg.Debounce())
			timerC = timer.C
			l.log.Debug("change detected", "path", ev.Path, "kind", ev.Kind)

		case <-timerC:
			timerC = nil
			l.fire(ctx, pending)
		}
	}
}

// fire starts a rebuild cycle unless one is already running, in which
// case this cycle is skipped outright rather than queued.
func (l *Loop) fire(ctx context.Context, ev Event) {
	if !l.inFlight.CompareAndSwap(false, true) {
		l.log.Info("rebuild already in flight, skipping", "trigger", ev.Path)
		return
	}
	go func() {
		defer l.inFlight.Store(false)

		if ev.Kind == KindTool {
			l.log.Info("recompiling", "trigger", ev.Path)
			if err := l.compile(ctx); err != nil {
				// Failed compile aborts this cycle only; the loop
				// keeps watching.
				l.log.Error("recompile failed", "error", err)
				return
			}
		}

		l.log.Info("rebuilding site", "trigger", ev.Path)
		if err := l.build(ctx); err != nil {
			l.log.Error("rebuild failed", "error", err)
		}
	}()
}

// Classify maps a changed path to a rebuild event. Hidden files are
// ignored everywhere. Post files trigger a site rebuild, as do
// template and stylesheet files; Go files under the source tree
// trigger a recompile-then-rebuild. Everything else is ignored.
func (l *Loop) Classify(path string) (Event, bool) {
	if hidden(path) {
		return Event{}, false
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case within(l.cfg.PostsDir, path):
		if ext == post.Extension {
			return Event{Kind: KindSite, Path: path}, true
		}
	case within(l.cfg.TemplatesDir, path):
		if ext == ".html" || ext == ".css" {
			return Event{Kind: KindSite, Path: path}, true
		}
	case within(l.cfg.SourceDir, path):
		if ext == ".go" {
			return Event{Kind: KindTool, Path: path}, true
		}
	}
	return Event{}, false
}

// hidden reports whether any element of the path is a dotfile.
func hidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// within reports whether path sits under dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
