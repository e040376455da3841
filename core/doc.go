// Package core defines the value type, operation tags, and cost model shared
// by the Bernstein search, the gendags/dagsearch DAG pipeline, and the qtree
// cost-lattice engine.
//
// Everything in this package is immutable or cheaply copyable: Value is a
// plain integer, CostParams is a small value struct built once via functional
// options and then shared read-only across engines.
package core
