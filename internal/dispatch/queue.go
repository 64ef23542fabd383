// Package dispatch serializes core work onto a single goroutine.
package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cristianoliveira/deskhide/internal/colors"
)

// ErrClosed is returned when work is submitted after Close.
var ErrClosed = errors.New("dispatch queue closed")

// Queue runs submitted functions one at a time, in submission order, on a
// worker goroutine. Call must not be used from inside a queued function.
type Queue struct {
	ch        chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	startOnce sync.Once
	closeOnce sync.Once
}

// New creates a queue with a fixed buffer.
func New(buffer int) *Queue {
	if buffer <= 0 {
		buffer = 64
	}
	return &Queue{ch: make(chan func(), buffer), done: make(chan struct{})}
}

// Start begins the worker goroutine. Safe to call multiple times.
func (q *Queue) Start() {
	q.startOnce.Do(func() {
		q.wg.Add(1)
		go q.loop()
	})
}

func (q *Queue) loop() {
	defer q.wg.Done()
	for {
		select {
		case fn := <-q.ch:
			run(fn)
		case <-q.done:
			for {
				select {
				case fn := <-q.ch:
					run(fn)
				default:
					return
				}
			}
		}
	}
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			colors.Error(fmt.Sprintf("dispatch: recovered from panic: %v", r))
		}
	}()
	fn()
}

// Post enqueues fn without waiting for it to run.
func (q *Queue) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	q.ch <- fn
	return nil
}

// Call runs fn on the worker goroutine and returns its error.
func (q *Queue) Call(fn func() error) error {
	result := make(chan error, 1)
	err := q.Post(func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("dispatch: panic: %v", r)
			}
			result <- err
		}()
		err = fn()
	})
	if err != nil {
		return err
	}
	return <-result
}

// Close rejects new work, runs what is already queued and stops the worker.
// Safe to call multiple times.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.Start()
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.done)
		q.wg.Wait()
	})
}
