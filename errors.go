package reserial

import (
	"errors"
	"fmt"
	"reflect"
)

// UnsupportedVariantError reports an instance outside the closed variant set
// {unbounded, bounded} x {manual, loading, async-loading}. It aborts the
// whole verification; there is no rule set to run.
type UnsupportedVariantError struct {
	Instance any
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("reserial: %v is not a supported cache variant", reflect.TypeOf(e.Instance))
}

// ErrUnwrapDepth means a weigher decorator chain did not bottom out within
// the unwrap bound. Surfaced as a finding, not a fault.
var ErrUnwrapDepth = errors.New("reserial: weigher decorator chain exceeds maximum depth")
