// Package secret holds the wrapper type used for every credential and
// raw PAN/CVV field that flows through the connector core. A Value
// never prints or serializes its contents by accident; the only way to
// see the underlying data is the explicit, grep-auditable Expose call.
package secret

import "crypto/subtle"

const mask = "***"

// Value wraps a single secret of type T. The zero Value is empty and
// still redacts safely.
type Value[T ~string] struct {
	inner T
	set   bool
}

// New wraps v as a secret.
func New[T ~string](v T) Value[T] {
	return Value[T]{inner: v, set: true}
}

// Expose returns the wrapped value. Every call site is an explicit,
// auditable admission that raw secret material is about to leave the
// wrapper.
func (v Value[T]) Expose() T {
	return v.inner
}

// IsSet reports whether a secret was ever assigned, as opposed to a
// zero Value produced by a missing optional field.
func (v Value[T]) IsSet() bool {
	return v.set
}

// String implements fmt.Stringer and never leaks the wrapped value.
func (v Value[T]) String() string {
	if !v.set {
		return ""
	}
	return mask
}

// MarshalJSON implements json.Marshaler and never leaks the wrapped
// value; secrets logged or serialized through encoding/json always come
// out as the mask, never as the underlying bytes.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte(`null`), nil
	}
	return []byte(`"` + mask + `"`), nil
}

// Equal performs a constant-time comparison of two secrets' exposed
// bytes, for auth paths (HMAC signature checks) where a timing leak on
// comparison length would itself be a vulnerability.
func Equal[T ~string](a, b Value[T]) bool {
	if a.set != b.set {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(string(a.inner)), []byte(string(b.inner))) == 1
}

// Last4 returns the final four characters of the exposed value, masking
// the rest with asterisks. Used for PAN display in logs and responses
// where the last four digits are explicitly permitted by policy.
func Last4[T ~string](v Value[T]) string {
	s := string(v.inner)
	if len(s) <= 4 {
		return mask
	}
	return mask + s[len(s)-4:]
}
