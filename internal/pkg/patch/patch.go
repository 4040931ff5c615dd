package patch

// Coalesce returns *ptr when set, otherwise fallback. Used for partial updates.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
