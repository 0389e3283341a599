// Package model provides model identifiers, fallback chains, and fixed-rate
// pricing for the consensus engine.
//
// Each debate role runs on a distinct model picked for its job: the chief
// needs the best reasoning available, the logic strategist a capable but
// efficient model, the critic a light fast one. Fallback chains keep a
// session running when the requested model is unavailable in the caller's
// org; resolution handles dated variants ("gpt-4.1-2025-04-14") by matching
// on the base name.
package model

// Name is an opaque model identifier as understood by the endpoint.
type Name string

// Default role models. The chief gets the newest reasoning tier and relies
// on the fallback chain when that tier is not served.
const (
	ChiefModel  Name = "gpt-4.1"
	LogicModel  Name = "gpt-4o"
	CriticModel Name = "gpt-4.1-nano-2025-04-14"
)
