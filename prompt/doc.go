// Package prompt builds the system prompts and evaluation contexts for the
// consensus and debate simulations.
//
// Builders are text/template based so the role text stays readable as a
// block instead of being assembled from string concatenation. The JSON
// schema embedded in the chief's instructions is generated from the typed
// evaluation struct, so prompt and parser can never drift apart on field
// names.
package prompt
