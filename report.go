package reserial

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Finding is one named check. Findings are append-only; once recorded they
// are never revised.
type Finding struct {
	Name     string
	Passed   bool
	Expected string // empty when passed
	Actual   string // empty when passed
	Diff     string // go-cmp rendering for value checks, empty otherwise
}

// Report accumulates findings for a single verification call. It is owned
// exclusively by that call and is not safe for concurrent use.
type Report struct {
	findings []Finding
}

func newReport() *Report { return &Report{} }

// Matches is the verdict: the conjunction of every recorded finding. It may
// be queried mid-verification.
func (r *Report) Matches() bool {
	for _, f := range r.findings {
		if !f.Passed {
			return false
		}
	}
	return true
}

// Findings returns the recorded findings in check order.
func (r *Report) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Describe renders the verdict with one line per failing finding.
func (r *Report) Describe() string {
	failed := 0
	for _, f := range r.findings {
		if !f.Passed {
			failed++
		}
	}
	if failed == 0 {
		return fmt.Sprintf("reserializable: all %d checks passed", len(r.findings))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "not reserializable: %d of %d checks failed:", failed, len(r.findings))
	for _, f := range r.findings {
		if f.Passed {
			continue
		}
		fmt.Fprintf(&b, "\n - %s: expected %s, was %s", f.Name, f.Expected, f.Actual)
		if f.Diff != "" {
			diff := strings.TrimRight(f.Diff, "\n")
			fmt.Fprintf(&b, "\n   %s", strings.ReplaceAll(diff, "\n", "\n   "))
		}
	}
	return b.String()
}

func (r *Report) pass(name string) {
	r.findings = append(r.findings, Finding{Name: name, Passed: true})
}

func (r *Report) fail(name, expected, actual, diff string) {
	r.findings = append(r.findings, Finding{
		Name:     name,
		Expected: expected,
		Actual:   actual,
		Diff:     diff,
	})
}

// expected records a composite failure where only the expectation is
// articulable, e.g. a structural validity gate.
func (r *Report) expected(name, want string) {
	r.fail(name, want, "invalid", "")
}

// expectValue records a value-equality finding, with a go-cmp diff attached
// on mismatch.
func expectValue[T any](r *Report, name string, want, got T) {
	if diff := cmp.Diff(want, got); diff != "" {
		r.fail(name, fmt.Sprint(want), fmt.Sprint(got), diff)
		return
	}
	r.pass(name)
}
