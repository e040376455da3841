// Package gendags enumerates every structurally distinct directed acyclic
// graph of q shift-and-add nodes, up to isomorphism, as spec.md §4.3
// describes.
//
// Enumerate adapts the teacher's dfs.dfsWalker idiom -- an explicit struct
// carrying iteration state across recursive-shaped work -- into a pair
// advancement state machine, since the original C implementation drives the
// same search with goto and a flat mutable array (spec.md §9's design
// note).
package gendags
