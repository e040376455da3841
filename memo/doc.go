// Package memo implements the hash-consed memo table the Bernstein search
// uses to share already-solved odd values across the branch-and-bound
// recursion (spec.md §4.1).
//
// A Table owns its buckets, population counter, and reset policy explicitly
// (spec.md §9's design note): no package-level mutable state, so multiple
// independent searches can run without interfering with each other, the way
// the teacher library threads an explicit *core.Graph through every
// algorithm rather than reaching for a global.
package memo
