// Package parser recovers the chief's evaluation JSON from free-form model
// output.
//
// Model replies are not guaranteed to be bare JSON: despite instructions the
// object may arrive wrapped in a code fence, surrounded by prose, or cut
// short by the max-token cap. Extract runs a cascade of strategies ordered
// from most precise to most tolerant: direct parse, fenced-block scan,
// balanced-brace scan, then per-field regex salvage, stopping at the first
// success so well-formed output is never string-mangled. Nothing in the
// cascade ever returns an error; an unusable reply yields nil and the caller
// decides how to present "no verdict".
package parser
