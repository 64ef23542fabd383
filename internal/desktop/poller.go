package desktop

import (
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/deskhide/internal/colors"
)

// Poller turns periodic snapshots into desktop events.
type Poller struct {
	snapshotter Snapshotter
	interval    time.Duration
}

// NewPoller returns a poller that snapshots every interval.
func NewPoller(snapshotter Snapshotter, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Poller{snapshotter: snapshotter, interval: interval}
}

// Watch takes a baseline snapshot and then delivers the events of every
// later change to handler from a background goroutine. Snapshot errors after
// the baseline are logged and retried on the next tick.
func (p *Poller) Watch(handler Handler) (Registration, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch: handler cannot be nil")
	}
	prev, err := p.snapshotter.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("watch: baseline snapshot: %w", err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			next, err := p.snapshotter.Snapshot()
			if err != nil {
				colors.Debug(fmt.Sprintf("desktop snapshot failed: %v", err))
				continue
			}
			for _, ev := range Diff(prev, next) {
				select {
				case <-stop:
					return
				default:
				}
				handler(ev)
			}
			prev = next
		}
	}()

	return NewRegistration(func() {
		close(stop)
		wg.Wait()
	}), nil
}
