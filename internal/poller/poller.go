// Package poller refreshes a task list session on a fixed interval.
package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist-sync/internal/client"
)

// Fetcher is the part of client.Session the poller needs.
type Fetcher interface {
	FetchTasks(ctx context.Context) error
	Tasks() []client.Task
}

type Poller struct {
	fetcher  Fetcher
	logger   *zap.Logger
	interval time.Duration
	onUpdate func([]client.Task)

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a poller that hands each successfully fetched collection to
// onUpdate. Failed fetches are logged and retried on the next tick.
func New(fetcher Fetcher, logger *zap.Logger, interval time.Duration, onUpdate func([]client.Task)) *Poller {
	return &Poller{
		fetcher:  fetcher,
		logger:   logger,
		interval: interval,
		onUpdate: onUpdate,
		stop:     make(chan struct{}),
	}
}

// Start fetches once right away, then on every tick until Stop or ctx is done.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting poller", zap.Duration("interval", p.interval))

	p.wg.Add(1)
	go p.loop(ctx)
}

func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.wg.Wait()
	p.logger.Info("Poller stopped")
}

// Wait blocks until the loop exits.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if err := p.fetcher.FetchTasks(ctx); err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("poll failed", zap.Error(err))
		}
		return
	}
	if p.onUpdate != nil {
		p.onUpdate(p.fetcher.Tasks())
	}
}
