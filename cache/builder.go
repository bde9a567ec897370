package cache

import "time"

// config carries every policy a variant records. Both cores embed it, which
// is what lets one Inspector implementation serve the whole variant set.
type config[K comparable, V any] struct {
	bounded        bool
	ticker         Ticker
	recordingStats bool
	listener       RemovalListener[K, V]
	keyStrength    Strength
	valueStrength  Strength

	// bounded only
	weigher   Weigher[K, V]
	maxWeight *int64

	expireAfterWrite  time.Duration
	expireAfterAccess time.Duration
	refreshAfterWrite time.Duration
}

func (c *config[K, V]) IsBounded() bool                      { return c.bounded }
func (c *config[K, V]) Ticker() Ticker                       { return c.ticker }
func (c *config[K, V]) IsRecordingStats() bool               { return c.recordingStats }
func (c *config[K, V]) RemovalListener() RemovalListener[K, V] { return c.listener }
func (c *config[K, V]) KeyStrength() Strength                { return c.keyStrength }
func (c *config[K, V]) ValueStrength() Strength              { return c.valueStrength }
func (c *config[K, V]) Weigher() Weigher[K, V]               { return c.weigher }
func (c *config[K, V]) ExpireAfterWrite() time.Duration      { return c.expireAfterWrite }
func (c *config[K, V]) ExpireAfterAccess() time.Duration     { return c.expireAfterAccess }
func (c *config[K, V]) RefreshAfterWrite() time.Duration     { return c.refreshAfterWrite }

func (c *config[K, V]) MaximumWeight() (int64, bool) {
	if c.maxWeight == nil {
		return 0, false
	}
	return *c.maxWeight, true
}

// Builder configures a cache. The zero value (via NewBuilder) produces an
// unbounded manual cache with strong references and the system ticker.
type Builder[K comparable, V any] struct {
	maxWeight         *int64
	weigher           Weigher[K, V]
	ticker            Ticker
	listener          RemovalListener[K, V]
	keyStrength       Strength
	valueStrength     Strength
	recordStats       bool
	expireAfterWrite  time.Duration
	expireAfterAccess time.Duration
	refreshAfterWrite time.Duration
}

func NewBuilder[K comparable, V any]() *Builder[K, V] {
	return &Builder[K, V]{}
}

// MaximumSize bounds the cache to n entries (each entry weighs 1).
func (b *Builder[K, V]) MaximumSize(n int64) *Builder[K, V] {
	if n < 0 {
		panic("cache: maximum size must not be negative")
	}
	b.maxWeight = &n
	return b
}

// MaximumWeight bounds the cache to a total weight of n, as measured by the
// configured Weigher.
func (b *Builder[K, V]) MaximumWeight(n int64) *Builder[K, V] {
	if n < 0 {
		panic("cache: maximum weight must not be negative")
	}
	b.maxWeight = &n
	return b
}

func (b *Builder[K, V]) Weigher(w Weigher[K, V]) *Builder[K, V] {
	b.weigher = w
	return b
}

func (b *Builder[K, V]) Ticker(t Ticker) *Builder[K, V] {
	b.ticker = t
	return b
}

func (b *Builder[K, V]) RemovalListener(l RemovalListener[K, V]) *Builder[K, V] {
	b.listener = l
	return b
}

func (b *Builder[K, V]) RecordStats() *Builder[K, V] {
	b.recordStats = true
	return b
}

func (b *Builder[K, V]) WeakKeys() *Builder[K, V] {
	b.keyStrength = Weak
	return b
}

func (b *Builder[K, V]) WeakValues() *Builder[K, V] {
	b.valueStrength = Weak
	return b
}

func (b *Builder[K, V]) SoftValues() *Builder[K, V] {
	b.valueStrength = Soft
	return b
}

func (b *Builder[K, V]) ExpireAfterWrite(d time.Duration) *Builder[K, V] {
	b.expireAfterWrite = d
	return b
}

func (b *Builder[K, V]) ExpireAfterAccess(d time.Duration) *Builder[K, V] {
	b.expireAfterAccess = d
	return b
}

func (b *Builder[K, V]) RefreshAfterWrite(d time.Duration) *Builder[K, V] {
	b.refreshAfterWrite = d
	return b
}

// Build creates a manual cache.
func (b *Builder[K, V]) Build() Cache[K, V] {
	return &manualCache[K, V]{localCache: b.buildLocal(false)}
}

// BuildLoading creates a loading cache backed by loader.
func (b *Builder[K, V]) BuildLoading(loader Loader[K, V]) LoadingCache[K, V] {
	if loader == nil {
		panic("cache: loader must not be nil")
	}
	return &loadingCache[K, V]{
		manualCache: manualCache[K, V]{localCache: b.buildLocal(false)},
		loader:      loader,
	}
}

// BuildAsync creates an async loading cache backed by loader.
func (b *Builder[K, V]) BuildAsync(loader Loader[K, V]) AsyncLoadingCache[K, V] {
	if loader == nil {
		panic("cache: loader must not be nil")
	}
	inner := &loadingCache[K, V]{
		manualCache: manualCache[K, V]{localCache: b.buildLocal(true)},
		loader:      loader,
	}
	return &asyncLoadingCache[K, V]{
		Inspector: inner,
		cache:     inner,
		loader:    loader,
		inflight:  make(map[K]*Future[V]),
	}
}

func (b *Builder[K, V]) buildLocal(async bool) localCache[K, V] {
	if b.weigher != nil && b.maxWeight == nil {
		panic("cache: weigher requires a maximum weight")
	}
	cfg := config[K, V]{
		ticker:            b.ticker,
		recordingStats:    b.recordStats,
		listener:          b.listener,
		keyStrength:       b.keyStrength,
		valueStrength:     b.valueStrength,
		expireAfterWrite:  b.expireAfterWrite,
		expireAfterAccess: b.expireAfterAccess,
		refreshAfterWrite: b.refreshAfterWrite,
	}
	if cfg.ticker == nil {
		cfg.ticker = SystemTicker
	}
	if b.maxWeight == nil {
		return &unboundedLocalCache[K, V]{
			config:  cfg,
			entries: make(map[K]*entry[V]),
		}
	}

	base := b.weigher
	if base == nil {
		base = SingletonWeigher[K, V]()
	}
	var w Weigher[K, V] = BoundedWeigher[K, V]{Delegate: base}
	if async {
		w = AsyncWeigher[K, V]{Delegate: w}
	}
	limit := *b.maxWeight
	cfg.bounded = true
	cfg.weigher = w
	cfg.maxWeight = &limit
	return &boundedLocalCache[K, V]{
		config:  cfg,
		entries: make(map[K]*entry[V]),
	}
}
