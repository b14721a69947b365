package progress

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

var (
	ErrOutboxFull   = errors.New("sync queue full")
	ErrOutboxClosed = errors.New("sync queue closed")
)

// Op is one pending remote side effect
type Op struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outbox accepts remote side effects without blocking the caller
type Outbox interface {
	Enqueue(op Op)
}

// FailureFunc is told about every op that was dropped
type FailureFunc func(op Op, err error)

// LogFailure is the default failure handler
func LogFailure(op Op, err error) {
	log.Printf("Warning: remote sync %s dropped: %v", op.Name, err)
}

// AsyncOutbox runs ops on a single background worker. Failed ops are not retried.
type AsyncOutbox struct {
	ops       chan Op
	timeout   time.Duration
	onFailure FailureFunc

	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAsyncOutbox starts the worker. size bounds the queue; timeout bounds each op.
func NewAsyncOutbox(size int, timeout time.Duration, onFailure FailureFunc) *AsyncOutbox {
	if size <= 0 {
		size = 64
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if onFailure == nil {
		onFailure = LogFailure
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &AsyncOutbox{
		ops:       make(chan Op, size),
		timeout:   timeout,
		onFailure: onFailure,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go o.run()
	return o
}

// Enqueue queues op, or drops it through the failure handler when the queue is full or closed
func (o *AsyncOutbox) Enqueue(op Op) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.onFailure(op, ErrOutboxClosed)
		return
	}

	select {
	case o.ops <- op:
	default:
		o.onFailure(op, ErrOutboxFull)
	}
}

func (o *AsyncOutbox) run() {
	defer close(o.done)
	for op := range o.ops {
		ctx, cancel := context.WithTimeout(o.ctx, o.timeout)
		err := op.Run(ctx)
		cancel()
		if err != nil {
			o.onFailure(op, err)
		}
	}
}

// Close stops accepting ops and waits for queued ones to finish. If ctx ends
// first, in-flight ops are cancelled and ctx's error is returned.
func (o *AsyncOutbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.ops)
	}
	o.mu.Unlock()

	select {
	case <-o.done:
		o.cancel()
		return nil
	case <-ctx.Done():
		o.cancel()
		<-o.done
		return ctx.Err()
	}
}

// SyncOutbox runs each op inline. Command line tools use it so work finishes before exit.
type SyncOutbox struct {
	Timeout   time.Duration
	OnFailure FailureFunc
}

func (o SyncOutbox) Enqueue(op Op) {
	ctx := context.Background()
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	if err := op.Run(ctx); err != nil {
		if o.OnFailure != nil {
			o.OnFailure(op, err)
		} else {
			LogFailure(op, err)
		}
	}
}
