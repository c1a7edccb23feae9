package catalog

import (
	"context"
	"errors"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/collections"
	"medimarket-service/internal/app/services/core/enrichment"
	"medimarket-service/internal/app/services/core/wizard"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/dto/requests"
	"medimarket-service/internal/pkg/dto/responses"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ReviewApproved = "approved"
	ReviewRejected = "rejected"

	methodApproveDoctor = "approveDoctor"
)

type Options struct {
	MaxConcurrency int
	// WaitTimeout bounds how long List waits for enrichment before returning
	// views that are still pending.
	WaitTimeout time.Duration
	SessionTTL  time.Duration
	Observer    enrichment.Observer
	Now         func() time.Time
	NewKey      func() string
}

type sessionKey struct {
	sessionID string
	kind      models.EntityKind
}

// viewSession owns one enrichment cache per (session, kind). mu serializes
// ledger lists so a refresh never races another refresh of the same list.
type viewSession struct {
	mu       sync.Mutex
	cache    *enrichment.Cache
	loaded   bool
	stale    atomic.Bool
	lastUsed time.Time
}

type catalogUsecase struct {
	Ledger          contracts.LedgerClient
	Resolver        contracts.ContentResolver
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	opts            Options

	mu       sync.Mutex
	sessions map[sessionKey]*viewSession
}

func NewCatalogUsecase(
	ledger contracts.LedgerClient,
	resolver contracts.ContentResolver,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
	opts Options,
) CatalogUsecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewKey == nil {
		opts.NewKey = utils.GenerateIdempotencyKey
	}
	return &catalogUsecase{
		Ledger:          ledger,
		Resolver:        resolver,
		RedisRepository: redisRepository,
		Log:             utils.NopIfNil(logger),
		opts:            opts,
		sessions:        make(map[sessionKey]*viewSession),
	}
}

func (uc *catalogUsecase) List(ctx context.Context, sessionID string, kind models.EntityKind, query *requests.CatalogQuery) (*responses.CatalogPage, error) {
	requestID := utils.GetRequestID(ctx)

	statusFilter, err := collections.StatusFilter(kind, query.Status)
	if err != nil {
		return nil, err
	}
	comparator, err := collections.SortBy(kind, query.Sort, collections.ParseSortOrder(query.Order))
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.load(ctx, sessionID, kind, query.Refresh)
	if err != nil {
		return nil, err
	}

	predicate := collections.And(
		collections.MatchText(query.Search),
		uc.hiddenDoctors(ctx, kind, query.Status),
	)
	views := collections.FilterAndSort(snapshot.Views, predicate, statusFilter, comparator)

	items := make([]responses.CatalogItem, 0, len(views))
	for _, view := range views {
		items = append(items, toCatalogItem(view))
	}

	uc.Log.Info("catalogUsecase.List succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityKindKey, kind.String()),
		zap.Uint64(constvars.LoggingGenerationKey, snapshot.Generation),
		zap.Int(constvars.LoggingResponseLengthKey, len(items)),
	)

	return &responses.CatalogPage{
		Kind:       kind.String(),
		Generation: snapshot.Generation,
		Settled:    snapshot.Settled,
		Buckets:    collections.Buckets(kind),
		Items:      items,
	}, nil
}

// Stats aggregates the same filtered view of the snapshot that List would
// return. Sorting does not affect aggregates, so the sort key is ignored.
func (uc *catalogUsecase) Stats(ctx context.Context, sessionID string, kind models.EntityKind, query *requests.CatalogQuery) (*responses.CatalogStats, error) {
	statusFilter, err := collections.StatusFilter(kind, query.Status)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.load(ctx, sessionID, kind, query.Refresh)
	if err != nil {
		return nil, err
	}

	predicate := collections.And(
		collections.MatchText(query.Search),
		uc.hiddenDoctors(ctx, kind, query.Status),
	)
	views := collections.FilterAndSort(snapshot.Views, predicate, statusFilter, nil)

	return &responses.CatalogStats{
		Kind:       kind.String(),
		Generation: snapshot.Generation,
		Stats:      collections.Aggregate(kind, views, collections.DefaultAggregateSpecs[kind]),
	}, nil
}

// FindView returns the current view of one entity from the session snapshot,
// listing the ledger first if the session has not seen this kind yet.
func (uc *catalogUsecase) FindView(ctx context.Context, sessionID string, ref models.EntityRef) (models.ViewModel, error) {
	if _, ok := models.ParseEntityKind(ref.Kind.String()); !ok {
		return models.ViewModel{}, exceptions.ErrUnknownEntityKind(nil, ref.Kind.String())
	}

	snapshot, err := uc.load(ctx, sessionID, ref.Kind, false)
	if err != nil {
		return models.ViewModel{}, err
	}
	for _, view := range snapshot.Views {
		if view.ID() == ref.ID {
			return view, nil
		}
	}
	return models.ViewModel{}, exceptions.ErrEntityNotFound(nil, ref.Kind.String(), ref.ID)
}

func (uc *catalogUsecase) ApproveDoctor(ctx context.Context, doctorID uint64) (*responses.DoctorReview, error) {
	requestID := utils.GetRequestID(ctx)

	payload := models.TransactionPayload{
		Method:         methodApproveDoctor,
		Args:           map[string]any{"doctor_id": doctorID},
		Value:          decimal.Zero,
		From:           utils.GetAccount(ctx),
		IdempotencyKey: uc.opts.NewKey(),
	}

	receipt, err := uc.Ledger.Submit(context.WithoutCancel(ctx), models.KindDoctor, payload)
	if err != nil {
		failure := wizard.Classify(err)
		uc.Log.Error("catalogUsecase.ApproveDoctor error calling Ledger.Submit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Uint64(constvars.LoggingEntityIDKey, doctorID),
			zap.String(constvars.LoggingFailureClassKey, string(failure.Class)),
			zap.Error(err),
		)
		if failure.Class == models.FailureNetwork || errors.Is(err, exceptions.ErrLedgerUnavailable) {
			return nil, exceptions.ErrLedgerUnavailableResponse(err)
		}
		return nil, exceptions.ErrLedgerWriteRejected(err, failure.Message)
	}

	if err := uc.RedisRepository.RemoveFromSet(ctx, constvars.RedisKeyRejectedDoctors, strconv.FormatUint(doctorID, 10)); err != nil {
		uc.Log.Warn("catalogUsecase.ApproveDoctor could not clear rejection mark",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Uint64(constvars.LoggingEntityIDKey, doctorID),
			zap.Error(err),
		)
	}
	uc.MarkStale("", models.KindDoctor)

	utils.LogBusinessEvent(uc.Log, "doctor_approved", requestID,
		zap.Uint64(constvars.LoggingEntityIDKey, doctorID),
		zap.String(constvars.LoggingTxHashKey, receipt.TxHash),
	)

	return &responses.DoctorReview{
		DoctorID: doctorID,
		Status:   ReviewApproved,
		TxHash:   receipt.TxHash,
	}, nil
}

// RejectDoctor only hides the doctor from the pending bucket. The ledger has
// no rejection call, so nothing is written there.
func (uc *catalogUsecase) RejectDoctor(ctx context.Context, doctorID uint64) (*responses.DoctorReview, error) {
	requestID := utils.GetRequestID(ctx)

	err := uc.RedisRepository.AddToSet(ctx, constvars.RedisKeyRejectedDoctors, strconv.FormatUint(doctorID, 10))
	if err != nil {
		uc.Log.Error("catalogUsecase.RejectDoctor error calling RedisRepository.AddToSet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Uint64(constvars.LoggingEntityIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "doctor_rejected", requestID,
		zap.Uint64(constvars.LoggingEntityIDKey, doctorID),
	)

	return &responses.DoctorReview{
		DoctorID: doctorID,
		Status:   ReviewRejected,
	}, nil
}

// MarkStale forces the next read of the given kinds to list the ledger again.
// An empty sessionID marks every session.
func (uc *catalogUsecase) MarkStale(sessionID string, kinds ...models.EntityKind) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for key, session := range uc.sessions {
		if sessionID != "" && key.sessionID != sessionID {
			continue
		}
		for _, kind := range kinds {
			if key.kind == kind {
				session.stale.Store(true)
			}
		}
	}
}

func (uc *catalogUsecase) load(ctx context.Context, sessionID string, kind models.EntityKind, refresh bool) (enrichment.Snapshot, error) {
	requestID := utils.GetRequestID(ctx)
	session := uc.session(sessionID, kind)

	session.mu.Lock()
	if !session.loaded || session.stale.Swap(false) || refresh {
		records, err := uc.Ledger.List(ctx, kind)
		if err != nil {
			if session.loaded {
				session.stale.Store(true)
			}
			session.mu.Unlock()
			uc.Log.Error("catalogUsecase.load error calling Ledger.List",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEntityKindKey, kind.String()),
				zap.Error(err),
			)
			return enrichment.Snapshot{}, exceptions.ErrLedgerUnavailableResponse(err)
		}
		session.cache.Refresh(ctx, records)
		session.loaded = true
	}
	session.mu.Unlock()

	if uc.opts.WaitTimeout > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, uc.opts.WaitTimeout)
		err := session.cache.Wait(waitCtx)
		cancel()
		if err != nil {
			uc.Log.Debug("catalogUsecase.load returning views still pending enrichment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEntityKindKey, kind.String()),
			)
		}
	}

	return session.cache.Snapshot(), nil
}

// session returns the view session for (sessionID, kind), creating it on
// first use and evicting sessions idle longer than SessionTTL.
func (uc *catalogUsecase) session(sessionID string, kind models.EntityKind) *viewSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.opts.Now()
	if uc.opts.SessionTTL > 0 {
		for key, session := range uc.sessions {
			if now.Sub(session.lastUsed) > uc.opts.SessionTTL {
				delete(uc.sessions, key)
			}
		}
	}

	key := sessionKey{sessionID: sessionID, kind: kind}
	session, ok := uc.sessions[key]
	if !ok {
		session = &viewSession{
			cache: enrichment.NewCache(uc.Resolver, uc.Log, enrichment.Options{
				MaxConcurrency: uc.opts.MaxConcurrency,
				Observer:       uc.opts.Observer,
			}),
		}
		uc.sessions[key] = session
	}
	session.lastUsed = now
	return session
}

// hiddenDoctors excludes client-side rejected doctors from the pending bucket.
func (uc *catalogUsecase) hiddenDoctors(ctx context.Context, kind models.EntityKind, bucket string) collections.Predicate {
	if kind != models.KindDoctor || strings.ToLower(strings.TrimSpace(bucket)) != "pending" {
		return nil
	}

	members, err := uc.RedisRepository.GetSetMembers(ctx, constvars.RedisKeyRejectedDoctors)
	if err != nil {
		uc.Log.Warn("catalogUsecase.hiddenDoctors error calling RedisRepository.GetSetMembers, showing all pending doctors",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil
	}

	ids := make(map[uint64]struct{}, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		ids[id] = struct{}{}
	}
	return collections.ExcludeIDs(ids)
}

func toCatalogItem(view models.ViewModel) responses.CatalogItem {
	item := responses.CatalogItem{
		ID:               view.ID(),
		Kind:             view.Kind().String(),
		Name:             view.DisplayName(),
		ResolutionStatus: string(view.Status),
		ResolutionError:  view.Error,
		Fields:           view.Fields(),
	}
	if view.Kind() == models.KindDoctor {
		rate := collections.DoctorSuccessRate(view)
		item.SuccessRate = &rate
	}
	return item
}
