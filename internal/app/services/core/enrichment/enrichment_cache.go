package enrichment

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Observer receives one call per view that reaches a terminal status.
type Observer interface {
	ObserveResolution(kind models.EntityKind, status models.ResolutionStatus)
}

type Options struct {
	// MaxConcurrency bounds in-flight resolver calls per generation; 0 means unbounded.
	MaxConcurrency int
	Observer       Observer
	// OnSettled runs outside the cache lock after a view leaves pending.
	OnSettled func(generation uint64, view models.ViewModel)
}

// Snapshot is a consistent copy of one generation of views.
type Snapshot struct {
	Generation uint64
	Views      []models.ViewModel
	Settled    bool
}

// Cache merges ledger records with their content documents. Each Refresh
// starts a new generation; completions belonging to an older generation are
// dropped when they arrive.
type Cache struct {
	resolver contracts.ContentResolver
	log      *zap.Logger
	opts     Options

	mu         sync.Mutex
	generation uint64
	views      []models.ViewModel
	settled    chan struct{}
}

func NewCache(resolver contracts.ContentResolver, logger *zap.Logger, opts Options) *Cache {
	return &Cache{
		resolver: resolver,
		log:      utils.NopIfNil(logger),
		opts:     opts,
	}
}

// Refresh replaces the cached views with records and resolves their content
// refs in the background. Records sharing a ref share one resolver call.
// Resolution is detached from ctx cancellation since it outlives the caller;
// timeouts are left to the resolver.
func (c *Cache) Refresh(ctx context.Context, records []models.LedgerRecord) uint64 {
	requestID := utils.GetRequestID(ctx)

	views := make([]models.ViewModel, len(records))
	indexesByRef := make(map[string][]int)
	var refs []string
	for i, record := range records {
		views[i] = models.NewViewModel(record)
		ref := record.ContentRef()
		if ref == "" {
			continue
		}
		if _, seen := indexesByRef[ref]; !seen {
			refs = append(refs, ref)
		}
		indexesByRef[ref] = append(indexesByRef[ref], i)
	}

	settled := make(chan struct{})

	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.views = views
	c.settled = settled
	c.mu.Unlock()

	c.log.Info("enrichment.Cache.Refresh started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint64(constvars.LoggingGenerationKey, generation),
		zap.Int(constvars.LoggingRecordCountKey, len(records)),
		zap.Int(constvars.LoggingDistinctRefCountKey, len(refs)),
	)

	for _, view := range views {
		if view.Status == models.ResolutionSkipped {
			c.notify(generation, view)
		}
	}

	if len(refs) == 0 {
		close(settled)
		return generation
	}

	go c.resolveAll(context.WithoutCancel(ctx), generation, refs, indexesByRef, settled)
	return generation
}

func (c *Cache) resolveAll(ctx context.Context, generation uint64, refs []string, indexesByRef map[string][]int, settled chan struct{}) {
	defer close(settled)

	var group errgroup.Group
	if c.opts.MaxConcurrency > 0 {
		group.SetLimit(c.opts.MaxConcurrency)
	}
	for _, ref := range refs {
		ref := ref
		group.Go(func() error {
			document, err := c.resolver.Fetch(ctx, ref)
			c.apply(ctx, generation, ref, indexesByRef[ref], document, err)
			return nil
		})
	}
	_ = group.Wait()
}

func (c *Cache) apply(ctx context.Context, generation uint64, ref string, indexes []int, document models.ContentDocument, err error) {
	requestID := utils.GetRequestID(ctx)

	c.mu.Lock()
	if generation != c.generation {
		current := c.generation
		c.mu.Unlock()
		c.log.Debug("enrichment.Cache.apply dropped stale result",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingContentRefKey, ref),
			zap.Uint64(constvars.LoggingGenerationKey, generation),
			zap.Uint64("current_generation", current),
		)
		return
	}

	updated := make([]models.ViewModel, 0, len(indexes))
	for _, index := range indexes {
		var next models.ViewModel
		var changed bool
		if err != nil {
			next, changed = c.views[index].Fail(err)
		} else {
			next, changed = c.views[index].Resolve(document)
		}
		if changed {
			c.views[index] = next
			updated = append(updated, next)
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("enrichment.Cache.apply resolution failed, using fallback labels",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingContentRefKey, ref),
			zap.Int(constvars.LoggingRecordCountKey, len(updated)),
			zap.Error(err),
		)
	}

	for _, view := range updated {
		c.notify(generation, view)
	}
}

func (c *Cache) notify(generation uint64, view models.ViewModel) {
	if c.opts.Observer != nil {
		c.opts.Observer.ObserveResolution(view.Kind(), view.Status)
	}
	if c.opts.OnSettled != nil {
		c.opts.OnSettled(generation, view)
	}
}

// Wait blocks until the generation that is current at call time has settled
// or ctx is done.
func (c *Cache) Wait(ctx context.Context) error {
	c.mu.Lock()
	settled := c.settled
	c.mu.Unlock()

	if settled == nil {
		return nil
	}
	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	views := make([]models.ViewModel, len(c.views))
	copy(views, c.views)

	settled := true
	if c.settled != nil {
		select {
		case <-c.settled:
		default:
			settled = false
		}
	}

	return Snapshot{
		Generation: c.generation,
		Views:      views,
		Settled:    settled,
	}
}

func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}
