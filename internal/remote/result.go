package remote

// Result is a typed fetch outcome. It makes fallback policy explicit at the
// call site: instead of burying defaults in error branches, callers write
// client.FetchSettings(ctx).WithFallback(feeconfig.Fallback()).
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps a fetch error
func Fail[T any](err error) Result[T] {
	var zero T
	return Result[T]{Value: zero, Err: err}
}

// Succeeded reports whether the fetch produced a value
func (r Result[T]) Succeeded() bool {
	return r.Err == nil
}

// Unwrap returns the conventional (value, error) pair
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// WithFallback returns the fetched value, or the given default when the
// fetch failed. The fallback is the caller's to own; it is never cached as
// if it had been loaded.
func (r Result[T]) WithFallback(def T) T {
	if r.Err != nil {
		return def
	}
	return r.Value
}
