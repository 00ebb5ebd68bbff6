package utils

// Ptr returns a pointer to a copy of v, for optional request fields such as
// a model temperature.
func Ptr[T any](v T) *T {
	return &v
}
