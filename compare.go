package reserial

import (
	"fmt"

	"github.com/unkn0wn-root/reserial/cache"
)

// Per-variant comparison rule sets. Mismatches are findings, never errors;
// every check runs and reports unless its branch failed the validity gate.

func checkSyncCache[K comparable, V any](original, copy cache.Cache[K, V], v Variant, rep *Report) {
	if err := validSync[K, V](copy); err != nil {
		rep.expected("valid cache", err.Error())
		return
	}

	checkCommon[K, V](original, copy, rep)
	if v.Bounded {
		checkBounded[K, V](original, copy, rep)
	}
	if v.Mode == Loading {
		var origLoader, copyLoader any
		if lc, ok := original.(cache.LoadingCache[K, V]); ok {
			origLoader = lc.Loader()
		}
		if lc, ok := copy.(cache.LoadingCache[K, V]); ok {
			copyLoader = lc.Loader()
		}
		checkLoader(origLoader, copyLoader, rep)
	}
}

func checkAsyncCache[K comparable, V any](original, copy cache.AsyncLoadingCache[K, V], bounded bool, rep *Report) {
	if err := validAsync[K, V](copy); err != nil {
		rep.expected("valid async cache", err.Error())
	} else {
		checkCommon[K, V](original, copy, rep)
		if bounded {
			checkBounded[K, V](original, copy, rep)
		}
	}
	// the loader is a sibling branch: it reports even when the outer cache
	// failed its validity gate
	checkLoader(original.Loader(), copy.Loader(), rep)
}

// checkCommon runs the checks every variant shares.
func checkCommon[K comparable, V any](original, copy cache.Inspector[K, V], rep *Report) {
	expectValue(rep, "estimated empty", int64(0), copy.MappingCount())

	// the ticker is expected to be a shared instance; an equivalent
	// reconstruction of the same type also passes
	ot, ct := original.Ticker(), copy.Ticker()
	if identical(ot, ct) || sameClass(ot, ct) {
		rep.pass("same ticker")
	} else {
		rep.fail("same ticker", typeName(ot), typeName(ct), "")
	}

	expectValue(rep, "same isRecordingStats", original.IsRecordingStats(), copy.IsRecordingStats())

	// listener instances lose identity across reconstruction; the
	// implementation type is the correctness bar
	ol, cl := original.RemovalListener(), copy.RemovalListener()
	switch {
	case ol == nil && cl == nil:
		rep.pass("same removalListener")
	case ol == nil:
		rep.fail("same removalListener", "no removalListener", typeName(cl), "")
	case cl == nil:
		rep.fail("non-null removalListener", typeName(ol), "<nil>", "")
	case !sameClass(ol, cl):
		rep.fail("same removalListener", typeName(ol), typeName(cl), "")
	default:
		rep.pass("same removalListener")
	}
}

// checkBounded runs the additional checks for weight-bounded variants.
func checkBounded[K comparable, V any](original, copy cache.Inspector[K, V], rep *Report) {
	ow, oerr := UnwrapWeigher[K, V](original.Weigher())
	cw, cerr := UnwrapWeigher[K, V](copy.Weigher())
	switch {
	case oerr != nil:
		rep.expected("unwrap weigher", oerr.Error())
	case cerr != nil:
		rep.expected("unwrap weigher", cerr.Error())
	case sameClass(ow, cw):
		rep.pass("same weigher")
	default:
		rep.fail("same weigher", typeName(ow), typeName(cw), "")
	}

	expectValue(rep, "same keyStrength", original.KeyStrength(), copy.KeyStrength())
	expectValue(rep, "same valueStrength", original.ValueStrength(), copy.ValueStrength())

	olimit, obounded := original.MaximumWeight()
	climit, cbounded := copy.MaximumWeight()
	switch {
	case !obounded && !cbounded:
		rep.pass("null maximumWeight")
	case !obounded:
		rep.fail("null maximumWeight", "no maximum weight", fmt.Sprint(climit), "")
	case !cbounded:
		rep.fail("same maximumWeight", fmt.Sprint(olimit), "no maximum weight", "")
	default:
		expectValue(rep, "same maximumWeight", olimit, climit)
	}

	expectValue(rep, "same expireAfterWriteNanos",
		original.ExpireAfterWrite().Nanoseconds(), copy.ExpireAfterWrite().Nanoseconds())
	expectValue(rep, "same expireAfterAccessNanos",
		original.ExpireAfterAccess().Nanoseconds(), copy.ExpireAfterAccess().Nanoseconds())
	expectValue(rep, "same refreshAfterWriteNanos",
		original.RefreshAfterWrite().Nanoseconds(), copy.RefreshAfterWrite().Nanoseconds())
}

func checkLoader(original, copy any, rep *Report) {
	if equalValue(original, copy) {
		rep.pass("same cacheLoader")
	} else {
		rep.fail("same cacheLoader", typeName(original), typeName(copy), "")
	}
}
