package dashboard

import (
	"context"
	"fmt"
	"net/url"

	"github.com/orris-inc/resinfo/internal/shared/clock"
	"github.com/orris-inc/resinfo/internal/shared/logger"
	sdkstatus "github.com/orris-inc/resinfo/sdk/status"
)

// Fetcher requests a status document.
type Fetcher interface {
	Fetch(ctx context.Context, selectors url.Values) (sdkstatus.Document, error)
}

// Observer is notified after a poll changed at least one widget.
type Observer func(group string, updated []string, view View)

type Poller struct {
	fetcher  Fetcher
	snapshot *Snapshot
	clock    clock.Clock
	observer Observer
	logger   logger.Interface
}

type PollerOption func(*Poller)

func WithClock(c clock.Clock) PollerOption {
	return func(p *Poller) { p.clock = c }
}

func WithObserver(o Observer) PollerOption {
	return func(p *Poller) { p.observer = o }
}

func NewPoller(fetcher Fetcher, log logger.Interface, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		snapshot: NewSnapshot(),
		clock:    clock.System,
		logger:   log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll requests g once and folds the document into the snapshot. A failed
// request leaves the widgets untouched; the next tick retries.
func (p *Poller) Poll(ctx context.Context, g Group) error {
	doc, err := p.fetcher.Fetch(ctx, g.Query)
	if err != nil {
		p.logger.Warnw("poll failed", "group", g.Name, "error", err)
		return fmt.Errorf("poll %s: %w", g.Name, err)
	}

	updated := p.snapshot.Apply(g.Name, doc, p.clock.Now())
	p.logger.Debugw("poll completed", "group", g.Name, "updated", updated)

	if len(updated) > 0 && p.observer != nil {
		p.observer(g.Name, updated, p.snapshot.View())
	}
	return nil
}

// View returns the current widget state.
func (p *Poller) View() View {
	return p.snapshot.View()
}
