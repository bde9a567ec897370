package reserial

import "reflect"

// Configuration fields do not share one equality operator. Tickers are
// shared instances (identity, else type), listeners and weighers survive
// reconstruction only as implementation types, loaders are values. Every
// comparison is guarded through reflect so an uncomparable dynamic type can
// never panic a verification.

// identical reports a == b without panicking on uncomparable dynamic types.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// sameClass reports whether a and b share a dynamic type.
func sameClass(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// equalValue compares by value when the shared dynamic type supports ==, and
// falls back to type equality when it does not.
func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return true
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
