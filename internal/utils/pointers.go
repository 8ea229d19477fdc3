package utils

// Ptr returns a pointer to v, handy for optional fields in patch payloads
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr dereferences v, or returns fallback when v is nil
func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
