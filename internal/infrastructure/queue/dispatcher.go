package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/stayease/marketplace-system/internal/api/metrics"
	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes favorite events to a fixed set of workers using
// consistent hashing on the listing id, guaranteeing per-listing ordering of
// add/remove toggles.
type Dispatcher struct {
	workers []chan domain.FavoriteEvent
	service ports.FavoriteService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.FavoriteService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.FavoriteEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.FavoriteEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its listing.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.FavoriteEvent) {
	d.workers[d.shardIndex(event.ListingID)] <- event
}

// shardIndex maps a listing id deterministically to a worker index.
func (d *Dispatcher) shardIndex(listingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(listingID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.FavoriteEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, event); err != nil {
				metrics.FavoriteEventsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("listing_id", event.ListingID).
					Str("user_id", event.UserID).
					Int("worker_id", id).
					Msg("favorite event processing failed")
			} else {
				metrics.FavoriteEventsTotal.WithLabelValues("processed").Inc()
			}
		}
	}
}
