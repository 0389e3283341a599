package query

// tryEach drives an ordered-candidate-with-recoverable-failure loop: attempt
// each candidate in order, skipping duplicates, until one succeeds or a
// failure is judged not worth continuing past. It returns the first success,
// or the recoverable failures collected along the way, or the fatal error
// that stopped the loop. Exhaustion is the case where result is zero, fatal
// is nil, and soft holds at least one error.
func tryEach[C comparable, T any](
	candidates []C,
	attempt func(C) (T, error),
	recoverable func(error) bool,
) (result T, soft []error, fatal error) {
	var zero T
	seen := make(map[C]struct{}, len(candidates))

	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		r, err := attempt(c)
		if err == nil {
			return r, soft, nil
		}
		if !recoverable(err) {
			return zero, soft, err
		}
		soft = append(soft, err)
	}
	return zero, soft, nil
}
