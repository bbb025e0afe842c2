package util

// MappedSlice maps the input slice using the provided mapping function.
func MappedSlice[V any, U any](values []V, f func(V) U) []U {
	result := make([]U, 0, len(values))
	for _, v := range values {
		result = append(result, f(v))
	}
	return result
}

// FilteredSlice returns the elements of `values` for which `keep` holds, in order.
func FilteredSlice[V any](values []V, keep func(V) bool) []V {
	result := make([]V, 0, len(values))
	for _, v := range values {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
