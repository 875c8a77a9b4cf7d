package utils

// Ptr returns a pointer to v. Used to build partial session updates.
func Ptr[T any](v T) *T {
	return &v
}
