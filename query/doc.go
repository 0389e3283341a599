// Package query drives resilient model invocations for the consensus engine.
//
// A Client layers two defenses against an unreliable endpoint. Within one
// invocation it tries the transports in order, router then direct, combining
// both causes when neither succeeds. Across invocations it walks the model
// fallback chain, retrying the conversation on substitute models while the
// failures stay recoverable and failing fast the moment one looks like it
// would recur on every candidate (auth, quota). Both loops are the same
// ordered-candidate-with-recoverable-failure pattern and share one helper.
//
// Successful invocations, and only those, are recorded into the caller's
// usage session.
package query
