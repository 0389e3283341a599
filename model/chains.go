package model

import "strings"

// FallbackEntry maps a base model name to the substitutes tried, in order,
// when the base model fails recoverably.
type FallbackEntry struct {
	Base        Name
	Substitutes []Name
}

// ChainSet is an ordered fallback table. It is a slice rather than a map so
// the lookup scan order is the declaration order: when two keys could both
// prefix-match an identifier, the earlier entry wins deterministically.
type ChainSet []FallbackEntry

// DefaultChains keeps a session running even when a model is unavailable in
// the caller's org.
var DefaultChains = ChainSet{
	{Base: "gpt-4.1", Substitutes: []Name{"gpt-4.1", "gpt-4o", "gpt-4o-mini"}},
	{Base: "gpt-4o", Substitutes: []Name{"gpt-4o-mini", "gpt-3.5-turbo"}},
	{Base: "gpt-4.1-nano-2025-04-14", Substitutes: []Name{"gpt-4o-mini", "gpt-3.5-turbo"}},
	{Base: "gpt-4o-mini", Substitutes: []Name{"gpt-3.5-turbo"}},
}

// matches reports whether id names this entry's base model, either exactly
// or as a hyphen-delimited variant of it ("gpt-4.1-2025-04-14" matches
// "gpt-4.1"). A dated identifier can prefix-match an entry declared before
// its own exact entry; the declaration-order scan makes that shadowing
// deterministic.
func (e FallbackEntry) matches(id Name) bool {
	return id == e.Base || strings.HasPrefix(string(id), string(e.Base)+"-")
}

// Resolve returns the ordered candidate list for one logical request: the
// requested identifier first, then the substitutes of the first table entry
// it matches. Duplicates are dropped while preserving first occurrence.
// An identifier with no matching entry resolves to itself alone.
func (cs ChainSet) Resolve(id Name) []Name {
	chain := []Name{id}
	for _, entry := range cs {
		if entry.matches(id) {
			chain = append(chain, entry.Substitutes...)
			break
		}
	}
	return dedupe(chain)
}

// dedupe removes repeated names, keeping the first occurrence of each.
func dedupe(names []Name) []Name {
	seen := make(map[Name]struct{}, len(names))
	out := names[:0:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
