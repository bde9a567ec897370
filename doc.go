// Package reserial verifies that a cache survives a serialization round
// trip: the reconstructed copy must preserve the original's configuration
// contract (policy settings, collaborator types, structural variant) while
// holding no entries. It is a correctness oracle for test suites, not a
// cache engine.
//
// Components:
//   - Matcher: single verification entry point. Classifies the instance into
//     one of the supported variants, runs the round trip, and compares
//     configuration per variant.
//   - Report: mismatches are findings, never errors. The verdict is the
//     conjunction of every finding; Describe lists each failure with
//     expected-vs-actual text.
//   - Reserializer: the default round trip. Dehydrates to a cache.Snapshot,
//     encodes with a Codec, optionally routes the bytes through a byte
//     store, decodes, rehydrates.
//
// Only classification failures and a visibly failing round trip abort a
// verification; everything else degrades to a finding in the report.
//
// usage:
//
//	m := reserial.Reserializable[string, int]()
//	rep, err := m.Verify(ctx, cacheUnderTest)
//	if err != nil {
//	    // not a supported variant, or the round trip itself failed
//	}
//	if !rep.Matches() {
//	    t.Error(rep.Describe())
//	}
package reserial
