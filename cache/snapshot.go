package cache

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Snapshot is the serializable form of a cache: policy settings by value,
// collaborators by registered component name. Entry state is deliberately
// not captured — a rehydrated cache always starts empty.
type Snapshot struct {
	Bounded bool `json:"bounded"`
	Loading bool `json:"loading"`
	Async   bool `json:"async"`

	RecordsStats  bool  `json:"records_stats"`
	KeyStrength   uint8 `json:"key_strength"`
	ValueStrength uint8 `json:"value_strength"`

	MaxWeight *int64 `json:"max_weight,omitempty"`

	ExpireAfterWriteNanos  int64 `json:"expire_after_write_nanos"`
	ExpireAfterAccessNanos int64 `json:"expire_after_access_nanos"`
	RefreshAfterWriteNanos int64 `json:"refresh_after_write_nanos"`

	// Component names; empty means absent (or, for Ticker/Weigher, the default).
	Ticker   string `json:"ticker,omitempty"`
	Listener string `json:"listener,omitempty"`
	Weigher  string `json:"weigher,omitempty"`
	Loader   string `json:"loader,omitempty"`
}

var registry = struct {
	mu        sync.RWMutex
	factories map[string]func() any
	names     map[reflect.Type]string
}{
	factories: make(map[string]func() any),
	names:     make(map[reflect.Type]string),
}

// Register makes a component implementation (ticker, removal listener,
// weigher, or loader) available to snapshot rehydration under a stable name.
// Registration is type-keyed: Dehydrate records a component's name by its
// dynamic type, Rehydrate rebuilds it by calling the factory. A factory that
// returns a shared instance preserves identity across round trips; one that
// returns fresh values preserves only the implementation type.
//
// Register panics on an empty name, a nil factory, or a duplicate name;
// component registration is an init-time concern.
func Register(name string, factory func() any) {
	if name == "" || factory == nil {
		panic("cache: invalid component registration")
	}
	t := reflect.TypeOf(factory())
	if t == nil {
		panic("cache: component factory returned nil")
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, dup := registry.factories[name]; dup {
		panic("cache: component already registered: " + name)
	}
	registry.factories[name] = factory
	registry.names[t] = name
}

func init() {
	Register("ticker.system", func() any { return SystemTicker })
}

func componentName(v any) (string, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	name, ok := registry.names[reflect.TypeOf(v)]
	return name, ok
}

func newComponent(name string) (any, bool) {
	registry.mu.RLock()
	factory, ok := registry.factories[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// resolve looks a named component up and asserts its role.
func resolve[T any](name, want string) (T, error) {
	var zero T
	v, ok := newComponent(name)
	if !ok {
		return zero, &UnknownComponentError{Name: name, Want: want}
	}
	t, ok := v.(T)
	if !ok {
		return zero, &ComponentTypeError{Name: name, Want: want, Got: reflect.TypeOf(v)}
	}
	return t, nil
}

// Dehydrate captures the configuration of any supported variant. Async views
// (the Synchronous facade of an async cache) dehydrate as their outer async
// instance. Instances that are not a known variant, or that hold an
// unregistered collaborator, fail with NotSerializableError.
func Dehydrate[K comparable, V any](instance any) (*Snapshot, error) {
	switch c := instance.(type) {
	case interface{ Outer() AsyncLoadingCache[K, V] }:
		return Dehydrate[K, V](c.Outer())
	case AsyncLoadingCache[K, V]:
		s, err := dehydrateConfig[K, V](c)
		if err != nil {
			return nil, err
		}
		s.Async, s.Loading = true, true
		s.Loader, err = loaderName[K, V](c.Loader())
		if err != nil {
			return nil, err
		}
		return s, nil
	case LoadingCache[K, V]:
		s, err := dehydrateConfig[K, V](c)
		if err != nil {
			return nil, err
		}
		s.Loading = true
		s.Loader, err = loaderName[K, V](c.Loader())
		if err != nil {
			return nil, err
		}
		return s, nil
	case Cache[K, V]:
		return dehydrateConfig[K, V](c)
	}
	return nil, &NotSerializableError{Component: "cache", Type: reflect.TypeOf(instance)}
}

func dehydrateConfig[K comparable, V any](c Inspector[K, V]) (*Snapshot, error) {
	s := &Snapshot{
		Bounded:                c.IsBounded(),
		RecordsStats:           c.IsRecordingStats(),
		KeyStrength:            uint8(c.KeyStrength()),
		ValueStrength:          uint8(c.ValueStrength()),
		ExpireAfterWriteNanos:  c.ExpireAfterWrite().Nanoseconds(),
		ExpireAfterAccessNanos: c.ExpireAfterAccess().Nanoseconds(),
		RefreshAfterWriteNanos: c.RefreshAfterWrite().Nanoseconds(),
	}
	if limit, ok := c.MaximumWeight(); ok {
		s.MaxWeight = &limit
	}

	if t := c.Ticker(); t != nil {
		name, ok := componentName(t)
		if !ok {
			return nil, &NotSerializableError{Component: "ticker", Type: reflect.TypeOf(t)}
		}
		s.Ticker = name
	}

	if l := c.RemovalListener(); l != nil {
		name, ok := componentName(l)
		if !ok {
			return nil, &NotSerializableError{Component: "removal listener", Type: reflect.TypeOf(l)}
		}
		s.Listener = name
	}

	if w := c.Weigher(); w != nil {
		base := baseWeigher[K, V](w)
		if _, isDefault := base.(singletonWeigher[K, V]); !isDefault {
			name, ok := componentName(base)
			if !ok {
				return nil, &NotSerializableError{Component: "weigher", Type: reflect.TypeOf(base)}
			}
			s.Weigher = name
		}
	}
	return s, nil
}

func loaderName[K comparable, V any](l Loader[K, V]) (string, error) {
	if l == nil {
		return "", fmt.Errorf("cache: loading cache without a loader")
	}
	name, ok := componentName(l)
	if !ok {
		return "", &NotSerializableError{Component: "loader", Type: reflect.TypeOf(l)}
	}
	return name, nil
}

// Rehydrate rebuilds a cache from its snapshot. The result is the same
// structural variant the snapshot was taken from, empty of entries, with
// collaborators rebuilt from the component registry.
func Rehydrate[K comparable, V any](s *Snapshot) (any, error) {
	if s == nil {
		return nil, fmt.Errorf("cache: nil snapshot")
	}
	if s.KeyStrength > uint8(Soft) || s.ValueStrength > uint8(Soft) {
		return nil, fmt.Errorf("cache: snapshot has an invalid reference strength")
	}
	if s.Async && !s.Loading {
		return nil, fmt.Errorf("cache: snapshot marks an async cache as non-loading")
	}
	if s.Bounded != (s.MaxWeight != nil) {
		return nil, fmt.Errorf("cache: snapshot bounded flag disagrees with its weight limit")
	}
	if s.Weigher != "" && s.MaxWeight == nil {
		return nil, fmt.Errorf("cache: snapshot has a weigher but no weight limit")
	}

	b := NewBuilder[K, V]()
	b.keyStrength = Strength(s.KeyStrength)
	b.valueStrength = Strength(s.ValueStrength)
	b.recordStats = s.RecordsStats
	b.expireAfterWrite = time.Duration(s.ExpireAfterWriteNanos)
	b.expireAfterAccess = time.Duration(s.ExpireAfterAccessNanos)
	b.refreshAfterWrite = time.Duration(s.RefreshAfterWriteNanos)

	if s.Ticker != "" {
		t, err := resolve[Ticker](s.Ticker, "cache.Ticker")
		if err != nil {
			return nil, err
		}
		b.ticker = t
	}
	if s.Listener != "" {
		l, err := resolve[RemovalListener[K, V]](s.Listener, "cache.RemovalListener")
		if err != nil {
			return nil, err
		}
		b.listener = l
	}
	if s.MaxWeight != nil {
		limit := *s.MaxWeight
		b.maxWeight = &limit
	}
	if s.Weigher != "" {
		w, err := resolve[Weigher[K, V]](s.Weigher, "cache.Weigher")
		if err != nil {
			return nil, err
		}
		b.weigher = w
	}

	if !s.Loading {
		return b.Build(), nil
	}
	loader, err := resolve[Loader[K, V]](s.Loader, "cache.Loader")
	if err != nil {
		return nil, err
	}
	if s.Async {
		return b.BuildAsync(loader), nil
	}
	return b.BuildLoading(loader), nil
}
