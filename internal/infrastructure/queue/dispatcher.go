package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/promoplay/playgate/internal/api/metrics"
	"github.com/promoplay/playgate/internal/core/domain"
	"github.com/promoplay/playgate/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher records granted plays off the request path. Audits are
// sharded by phone number across a fixed set of workers so entries for one
// participant are written in order.
type AuditDispatcher struct {
	workers []chan domain.PlayAudit
	repo    ports.PlayAuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards closed. Record holds the read lock while enqueuing so that
	// once closed is set no audit can land in a channel nobody drains.
	mu     sync.RWMutex
	closed bool
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.PlayAuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.PlayAudit, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PlayAudit, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record implements ports.PlayRecorder. It never blocks: when the shard's
// buffer is full, or the workers have shut down, the audit is dropped and logged.
func (d *AuditDispatcher) Record(audit domain.PlayAudit) {
	idx := d.shardIndex(audit.PhoneNumber)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("phone_number", audit.PhoneNumber).
			Str("request_id", audit.RequestID).
			Msg("audit dispatcher stopped, play audit dropped")
		return
	}

	select {
	case d.workers[idx] <- audit:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("phone_number", audit.PhoneNumber).
			Str("request_id", audit.RequestID).
			Int("worker_id", idx).
			Msg("audit queue full, play audit dropped")
	}
}

// shardIndex maps a phone number deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(phoneNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(phoneNumber))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PlayAudit) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.close()
			d.drain(id, ch)
			return
		case audit := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, audit)
		}
	}
}

// close stops Record from accepting audits. It waits for in-flight Record
// calls, so a drain that follows sees every accepted audit.
func (d *AuditDispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

// drain writes whatever is still buffered using a fresh context, so audits
// accepted before shutdown are not lost.
func (d *AuditDispatcher) drain(id int, ch <-chan domain.PlayAudit) {
	for {
		select {
		case audit := <-ch:
			d.write(context.Background(), id, audit)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) write(ctx context.Context, id int, audit domain.PlayAudit) {
	if err := d.repo.InsertPlayAudit(ctx, &audit); err != nil {
		metrics.AuditErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("phone_number", audit.PhoneNumber).
			Str("request_id", audit.RequestID).
			Int("worker_id", id).
			Msg("play audit write failed")
		return
	}
	metrics.AuditWrittenTotal.Inc()
}
