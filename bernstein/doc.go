// Package bernstein implements the recursive, memoized branch-and-bound
// search that builds a minimum-cost straight-line program multiplying x by
// a positive constant using shift, add and subtract (spec.md §4.2); the
// search itself runs on the constant's odd part.
//
// Engine is grounded on the teacher pack's tsp.bbEngine: an explicit struct
// carrying search policy and mutable state, deterministic branching order,
// and admissible-bound pruning, adapted from Hamiltonian-cycle search to
// the four-transformation value search described in spec.md.
package bernstein
