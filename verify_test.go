package reserial

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/reserial/cache"
)

func TestVerifyBoundedManualPasses(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().
		MaximumSize(100).
		ExpireAfterWrite(5 * time.Minute).
		Build()
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	rep, err := Reserializable[string, int]().Verify(context.Background(), c)
	require.NoError(t, err)
	require.Empty(t, failingFindings(rep), rep.Describe())
	require.True(t, rep.Matches())

	// verification must not disturb the original
	require.EqualValues(t, 3, c.MappingCount())
}

func TestVerifyUnboundedManualPasses(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().Build()
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Put(k, len(k))
	}

	rep, err := Reserializable[string, int]().Verify(context.Background(), c)
	require.NoError(t, err)
	require.Empty(t, failingFindings(rep), rep.Describe())
}

func TestVerifyFullConfigurationPasses(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().
		MaximumWeight(64).
		Weigher(lengthWeigher{}).
		WeakKeys().
		SoftValues().
		RecordStats().
		Ticker(sharedTicker).
		RemovalListener(&countingListener{}).
		ExpireAfterWrite(5 * time.Minute).
		ExpireAfterAccess(time.Minute).
		RefreshAfterWrite(30 * time.Second).
		BuildLoading(squareLoader{})

	rep, err := Reserializable[string, int]().Verify(context.Background(), c)
	require.NoError(t, err)
	require.Empty(t, failingFindings(rep), rep.Describe())
}

func TestVerifyAsyncLoadingPasses(t *testing.T) {
	registerTestComponents()
	for _, bounded := range []bool{false, true} {
		b := cache.NewBuilder[string, int]()
		if bounded {
			b.MaximumSize(10)
		}
		c := b.BuildAsync(squareLoader{})

		rep, err := Reserializable[string, int]().Verify(context.Background(), c)
		require.NoError(t, err)
		require.Empty(t, failingFindings(rep), rep.Describe())
	}
}

func TestVerifySynchronousViewVerifiesAsOuter(t *testing.T) {
	registerTestComponents()
	async := cache.NewBuilder[string, int]().MaximumSize(10).BuildAsync(squareLoader{})

	rep, err := Reserializable[string, int]().Verify(context.Background(), async.Synchronous())
	require.NoError(t, err)
	require.Empty(t, failingFindings(rep), rep.Describe())
}

func TestVerifyListenerClassMismatch(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().
		MaximumSize(10).
		RemovalListener(&countingListener{}).
		BuildLoading(squareLoader{})

	m := New[string, int](Options{RoundTripper: tamperTripper{
		mutate: func(s *cache.Snapshot) { s.Listener = "test.listener.different" },
	}})
	rep, err := m.Verify(context.Background(), c)
	require.NoError(t, err)

	failed := failingFindings(rep)
	require.Len(t, failed, 1, rep.Describe())
	require.Equal(t, "same removalListener", failed[0].Name)
	require.Contains(t, failed[0].Expected, "countingListener")
	require.Contains(t, failed[0].Actual, "differentListener")
	require.False(t, rep.Matches())
}

func TestVerifyMaximumWeightMismatch(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().MaximumSize(100).Build()

	m := New[string, int](Options{RoundTripper: tamperTripper{
		mutate: func(s *cache.Snapshot) { *s.MaxWeight = 50 },
	}})
	rep, err := m.Verify(context.Background(), c)
	require.NoError(t, err)

	failed := failingFindings(rep)
	require.Len(t, failed, 1, rep.Describe())
	require.Equal(t, "same maximumWeight", failed[0].Name)
	require.NotEmpty(t, failed[0].Diff)
}

func TestVerifyStatsFlagMismatch(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().RecordStats().Build()

	m := New[string, int](Options{RoundTripper: tamperTripper{
		mutate: func(s *cache.Snapshot) { s.RecordsStats = false },
	}})
	rep, err := m.Verify(context.Background(), c)
	require.NoError(t, err)

	failed := failingFindings(rep)
	require.Len(t, failed, 1, rep.Describe())
	require.Equal(t, "same isRecordingStats", failed[0].Name)
}

func TestVerifyVariantChangeIsASingleFinding(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().MaximumSize(10).Build()

	m := New[string, int](Options{RoundTripper: tamperTripper{
		mutate: func(s *cache.Snapshot) {
			s.Bounded = false
			s.MaxWeight = nil
		},
	}})
	rep, err := m.Verify(context.Background(), c)
	require.NoError(t, err)

	failed := failingFindings(rep)
	require.Len(t, failed, 1)
	require.Equal(t, "same variant", failed[0].Name)
	require.Equal(t, "bounded manual", failed[0].Expected)
	require.Equal(t, "unbounded manual", failed[0].Actual)
}

func TestVerifyUnsupportedVariant(t *testing.T) {
	registerTestComponents()
	var uerr *UnsupportedVariantError

	rep, err := Reserializable[string, int]().Verify(context.Background(), "not a cache")
	require.ErrorAs(t, err, &uerr)
	require.Nil(t, rep)
}

func TestVerifyUnregisteredListenerFailsVisibly(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().
		RemovalListener(unregisteredListener{}).
		Build()

	var serr *cache.NotSerializableError
	_, err := Reserializable[string, int]().Verify(context.Background(), c)
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "removal listener", serr.Component)
}

type unregisteredListener struct{}

func (unregisteredListener) OnRemoval(string, int, cache.RemovalCause) {}

func TestMatchesShorthand(t *testing.T) {
	registerTestComponents()
	c := cache.NewBuilder[string, int]().MaximumSize(10).Build()
	require.True(t, Reserializable[string, int]().Matches(c))
	require.False(t, Reserializable[string, int]().Matches(struct{}{}))
}

// deepWeigherCache buries the base weigher under more decorator layers than
// the unwrapper tolerates.
type deepWeigherCache struct {
	cache.Cache[string, int]
}

func (c deepWeigherCache) Weigher() cache.Weigher[string, int] {
	w := c.Cache.Weigher()
	for i := 0; i < maxWeigherDepth; i++ {
		w = cache.BoundedWeigher[string, int]{Delegate: w}
	}
	return w
}

func TestBoundedChecksSurviveUnwrapOverflow(t *testing.T) {
	registerTestComponents()
	build := func() cache.Cache[string, int] {
		return cache.NewBuilder[string, int]().
			MaximumWeight(64).
			Weigher(lengthWeigher{}).
			Build()
	}

	rep := newReport()
	checkBounded[string, int](build(), deepWeigherCache{build()}, rep)

	failed := failingFindings(rep)
	require.Len(t, failed, 1, rep.Describe())
	require.Equal(t, "unwrap weigher", failed[0].Name)

	// the overflow degrades to a finding; every sibling check still reports
	var names []string
	for _, f := range rep.Findings() {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{
		"unwrap weigher",
		"same keyStrength",
		"same valueStrength",
		"same maximumWeight",
		"same expireAfterWriteNanos",
		"same expireAfterAccessNanos",
		"same refreshAfterWriteNanos",
	}, names)
}

// loaderlessAsync breaks the loader invariant of an otherwise valid async
// cache, to exercise the sibling-branch rule: a failed validity gate on the
// outer cache must not suppress the loader finding.
type loaderlessAsync struct {
	cache.AsyncLoadingCache[string, int]
}

func (loaderlessAsync) Loader() cache.Loader[string, int] { return nil }

func TestAsyncLoaderCheckSurvivesInvalidOuter(t *testing.T) {
	registerTestComponents()
	orig := cache.NewBuilder[string, int]().MaximumSize(10).BuildAsync(squareLoader{})
	broken := loaderlessAsync{cache.NewBuilder[string, int]().MaximumSize(10).BuildAsync(squareLoader{})}

	rep := newReport()
	checkAsyncCache[string, int](orig, broken, true, rep)

	failed := failingFindings(rep)
	require.Len(t, failed, 2, rep.Describe())
	require.Equal(t, "valid async cache", failed[0].Name)
	require.Equal(t, "same cacheLoader", failed[1].Name)
}
