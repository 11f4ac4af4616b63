package diag

// Join merges errors into one diagnostic error, keeping the diagnostics of
// every input in argument order. It returns nil when all inputs are nil.
// Errors that carry no diagnostics become a single error diagnostic.
func Join(errs ...error) error {
	var out *Error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if out == nil {
			out = &Error{}
		}
		de, ok := As(err)
		if !ok {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Source:   out.Source,
				Message:  err.Error(),
				Severity: SeverityError,
			})
			continue
		}
		if out.Display == "" {
			out.Display = de.Display
		}
		if out.Source == nil {
			out.Source = de.Source
		}
		out.Diagnostics = append(out.Diagnostics, de.Diagnostics...)
	}
	if out == nil {
		return nil
	}
	return out
}

// Result pairs a value with the error produced while binding it.
type Result[T any] struct {
	Value T
	Err   error
}

// R wraps a (value, error) return so it can be merged later.
func R[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

func Fail[T any](err error) Result[T] { return Result[T]{Err: err} }

func (r Result[T]) Failed() bool { return IsFailure(r.Err) }

// Get returns the value, or the zero value if the result failed.
func (r Result[T]) Get() (T, error) {
	if r.Failed() {
		var zero T
		return zero, r.Err
	}
	return r.Value, r.Err
}

func Merge2[A, B any](a Result[A], b Result[B]) (A, B, error) {
	err := Join(a.Err, b.Err)
	if IsFailure(err) {
		var (
			za A
			zb B
		)
		return za, zb, err
	}
	return a.Value, b.Value, err
}

func Merge3[A, B, C any](a Result[A], b Result[B], c Result[C]) (A, B, C, error) {
	err := Join(a.Err, b.Err, c.Err)
	if IsFailure(err) {
		var (
			za A
			zb B
			zc C
		)
		return za, zb, zc, err
	}
	return a.Value, b.Value, c.Value, err
}

func Merge4[A, B, C, D any](a Result[A], b Result[B], c Result[C], d Result[D]) (A, B, C, D, error) {
	err := Join(a.Err, b.Err, c.Err, d.Err)
	if IsFailure(err) {
		var (
			za A
			zb B
			zc C
			zd D
		)
		return za, zb, zc, zd, err
	}
	return a.Value, b.Value, c.Value, d.Value, err
}

func Merge5[A, B, C, D, E any](a Result[A], b Result[B], c Result[C], d Result[D], e Result[E]) (A, B, C, D, E, error) {
	err := Join(a.Err, b.Err, c.Err, d.Err, e.Err)
	if IsFailure(err) {
		var (
			za A
			zb B
			zc C
			zd D
			ze E
		)
		return za, zb, zc, zd, ze, err
	}
	return a.Value, b.Value, c.Value, d.Value, e.Value, err
}

// MergeAll succeeds with every value when no element failed. Otherwise the
// successful values are dropped and all failing diagnostics are returned.
func MergeAll[T any](results []Result[T]) ([]T, error) {
	errs := make([]error, 0, len(results))
	values := make([]T, 0, len(results))
	for _, r := range results {
		errs = append(errs, r.Err)
		values = append(values, r.Value)
	}
	err := Join(errs...)
	if IsFailure(err) {
		return nil, err
	}
	return values, err
}

// Collector gathers errors for binders with more fields than Merge5 covers.
type Collector struct {
	errs []error
}

// Add records err and reports whether it was free of failures.
func (c *Collector) Add(err error) bool {
	if err == nil {
		return true
	}
	c.errs = append(c.errs, err)
	return !IsFailure(err)
}

func (c *Collector) Failed() bool { return IsFailure(c.Err()) }

func (c *Collector) Err() error { return Join(c.errs...) }
