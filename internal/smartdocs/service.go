package smartdocs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"smartdocs/internal/cache"
	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultRecentLimit = 256
)

// Config encapsulates the collaborators of a Service.
type Config struct {
	Store    store.Store
	Cache    cache.Cache
	Registry *hooks.Registry
	Logger   zerolog.Logger
	// RecentLimit bounds the in-memory list of recently dispatched events.
	RecentLimit int
}

// Service owns the models and fires the lifecycle hooks around their mutation.
type Service struct {
	// mu serializes the read-check-write sections that keep model names
	// unique and revision numbers sequential.
	mu       sync.Mutex
	store    store.Store
	cache    cache.Cache
	reg      *hooks.Registry
	log      zerolog.Logger
	recorder *hooks.Recorder
	feed     *hooks.Feed
	now      func() time.Time
	newID    func() string

	// genMu guards gens, the per-model count of render cache invalidations.
	// A render is cached only if no invalidation happened while it ran.
	genMu sync.Mutex
	gens  map[string]uint64
}

// New constructs a Service. Missing collaborators default to a memory store,
// a memory cache and an empty registry. The recorder and the event feed are
// attached to the registry as taps, so New must run before the registry is
// sealed.
func New(cfg Config) *Service {
	s := &Service{
		store: cfg.Store,
		cache: cfg.Cache,
		reg:   cfg.Registry,
		log:   cfg.Logger,
		feed:  hooks.NewFeed(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
		gens:  make(map[string]uint64),
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.cache == nil {
		s.cache = cache.NewMemory(0)
	}
	if s.reg == nil {
		s.reg = hooks.NewRegistry()
	}
	limit := cfg.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	s.recorder = hooks.NewRecorder(limit)
	if err := s.reg.AddTap(snapshotTap{s.recorder, s.feed}); err != nil {
		s.log.Warn().Err(err).Msg("event taps not attached")
	}
	return s
}

// Registry returns the hook registry the Service dispatches on.
func (s *Service) Registry() *hooks.Registry { return s.reg }

// Ready reports whether startup completed, i.e. the registry was sealed.
func (s *Service) Ready() bool { return s.reg.Sealed() }

// HookCatalog lists every lifecycle event with its observer count.
func (s *Service) HookCatalog() []types.HookInfo { return hooks.Catalog(s.reg) }

// RecentEvents returns the most recently dispatched events, oldest first.
func (s *Service) RecentEvents() []types.HookRecord {
	recs := s.recorder.Records()
	out := make([]types.HookRecord, len(recs))
	for i, r := range recs {
		out[i] = hookRecord(r)
	}
	return out
}

// SubscribeEvents streams dispatched events until cancel is called. Like the
// underlying feed, a subscriber that falls behind misses events.
func (s *Service) SubscribeEvents(buf int) (<-chan types.HookRecord, func()) {
	in, cancel := s.feed.Subscribe(buf)
	out := make(chan types.HookRecord, cap(in))
	go func() {
		defer close(out)
		for r := range in {
			select {
			case out <- hookRecord(r):
			default:
			}
		}
	}()
	return out, cancel
}

// EventSubscribers reports the number of live SubscribeEvents streams.
func (s *Service) EventSubscribers() int { return s.feed.Subscribers() }

// Close releases the store and the cache.
func (s *Service) Close() error {
	return multierr.Combine(s.store.Close(), s.cache.Close())
}

func hookRecord(r hooks.Record) types.HookRecord {
	hr := types.HookRecord{Name: r.Name, Args: r.Args, At: r.At}
	if r.Err != nil {
		hr.Error = r.Err.Error()
	}
	return hr
}

// modelUpdated fires model.update and drops the model's rendered pages.
func (s *Service) modelUpdated(ctx context.Context, modelUUID string) error {
	s.invalidate(ctx, modelUUID)
	return hooks.Dispatch(ctx, s.reg, hooks.ModelUpdate, hooks.ModelUpdateArgs{ModelUUID: modelUUID})
}

// invalidate drops cached renders of a model. Cache failures are logged only.
func (s *Service) invalidate(ctx context.Context, modelUUID string) {
	s.genMu.Lock()
	s.gens[modelUUID]++
	s.genMu.Unlock()
	if err := s.cache.DeletePrefix(ctx, cache.RenderPrefix(modelUUID)); err != nil {
		s.log.Warn().Err(err).Str("model", modelUUID).Msg("render cache invalidation failed")
	}
}

func validate(kind string, v any) error {
	if err := types.Validate(v); err != nil {
		return ErrInvalid("invalid "+kind, err)
	}
	return nil
}

func (s *Service) generation(modelUUID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[modelUUID]
}

// cacheRender stores html under key unless the model was invalidated since
// gen was read. The check and the write happen under genMu so a concurrent
// invalidation either precedes the check or deletes the entry after it.
func (s *Service) cacheRender(ctx context.Context, modelUUID, key, html string, gen uint64) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gens[modelUUID] != gen {
		renderTotal.WithLabelValues("stale").Inc()
		return
	}
	if err := s.cache.Set(ctx, key, html); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("render cache write failed")
	}
}
