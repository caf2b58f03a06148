package ptr

// Ptr returns a pointer to the given value.
// Useful for optional fields in filters and request models.
func Ptr[T any](v T) *T {
	return &v
}
