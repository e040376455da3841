// Package qtree computes f_m(n) for every n in [0, m]: the minimum number of
// additions and subtractions needed to reach n from the set of powers of
// two, where multiplying two reached values adds no cost, under the
// inductive rules spec.md §4.5 states.
//
// Compute relaxes the lattice level by level, the way dijkstra.Dijkstra
// settles vertices in order of increasing distance using a bucket queue
// (Dial's algorithm): level c is fully determined by levels < c, so once a
// level's bucket is finalized it is never revisited. The three passes within
// a level (additive/subtractive, multiplicative, power-of-two) play the
// role dijkstra's edge relaxation plays per settled vertex.
package qtree
