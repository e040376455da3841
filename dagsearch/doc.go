// Package dagsearch evaluates every DAG gendags produces: for each
// assignment of operation (add/sub), pre-shifted operand, and shift count,
// it records the minimum DAG size q at which each reachable integer up to
// mrec first appears (spec.md §4.4).
//
// Per node, state advances through the ordered rotation spec.md §4.4
// describes: add with the second ("right") operand pre-shifted (shift
// 0,1,2,...), then add with the first ("left") operand pre-shifted (shift
// 1,2,...), then subtract with the right operand pre-shifted (shift
// 0,1,2,...); exhausting all three backtracks to the previous node. This
// follows spec.md's explicit three-tier description rather than one
// original-C revision's extra fourth (subtract, left-shifted) tier -- see
// DESIGN.md.
//
// The per-node transition is modeled as an explicit step() per spec.md
// §9's design note, replacing the original's goto/decrement simulation.
package dagsearch
