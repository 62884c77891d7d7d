package enrich

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Persister writes a dataset snapshot to durable storage.
type Persister interface {
	Persist(ctx context.Context, ds *model.Dataset) error
}

// Writer persists dataset snapshots on a single background consumer.
// Submissions are coalesced through a latest-wins mailbox: under
// backpressure intermediate snapshots are skipped, and a snapshot never
// lands after one submitted later. Persistence failures are logged and
// consumed; the writer keeps going.
type Writer struct {
	persister Persister

	mu      sync.Mutex
	pending *model.Dataset

	notify  chan struct{}
	done    chan struct{}
	written atomic.Int64
}

// NewWriter starts a checkpoint writer draining into the given persister.
func NewWriter(p Persister) *Writer {
	w := &Writer{
		persister: p,
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit hands a snapshot to the writer without blocking. The snapshot must
// not be mutated after submission. Submit must not be called after Close.
func (w *Writer) Submit(ds *model.Dataset) {
	w.mu.Lock()
	w.pending = ds
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Close stops the writer after draining any pending snapshot. It blocks
// until the final write has completed.
func (w *Writer) Close() {
	close(w.notify)
	<-w.done
}

// Written returns how many snapshots have been persisted.
func (w *Writer) Written() int64 {
	return w.written.Load()
}

func (w *Writer) loop() {
	defer close(w.done)
	for range w.notify {
		w.flush()
	}
	// A snapshot submitted between the last notification and Close still
	// needs to land.
	w.flush()
}

func (w *Writer) flush() {
	w.mu.Lock()
	ds := w.pending
	w.pending = nil
	w.mu.Unlock()

	if ds == nil {
		return
	}

	if err := w.persister.Persist(context.Background(), ds); err != nil {
		zap.L().Warn("checkpoint: persist failed", zap.Error(err))
		return
	}
	w.written.Add(1)
}
