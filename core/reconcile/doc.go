// Package reconcile aligns a lithology interval log and an assay interval log
// of the same drillholes into a single depth-consistent interval table.
//
// Each source partitions a hole's depth axis with its own boundaries. The
// engine computes, per hole, the sorted union of every boundary from both
// sources (the breakpoints) and emits one output interval between each pair of
// consecutive breakpoints. Every output interval is then joined against both
// sources with a half-open containment rule (from <= x < to), so it carries the
// rock code and the assay values valid at that depth.
//
// # Architecture
//
//   - Extract: column mappings turn raw tables into typed intervals, applying
//     the configured data quality policy to malformed rows.
//   - CommonHoles: restricts both sources to hole ids present in both.
//   - Merge (optional): remaps rock codes through a Grouping and merges
//     consecutive same-code intervals.
//   - Align: per-hole breakpoint union and interval skeletons.
//   - Join: per-hole ordered lookup of the covering source intervals.
//   - MergedTable: the immutable result.
//
// # Ordering
//
// When several source intervals contain the same depth, the one with the
// lowest Seq wins. Seq is the row index in the source table, or the output
// position after Merge. The policy is deterministic but does not repair
// overlapping source data.
//
// The final breakpoint of a hole never starts an interval, so the depth below
// the deepest boundary is not represented.
//
// # Concurrency
//
// Holes are independent. The join runs one task per hole on an errgroup with
// a configurable worker limit; results are concatenated in hole id order.
//
// # Usage
//
//	res, err := reconcile.Reconcile(ctx, lithTable, assayTable, lithMap, assayMap, reconcile.Options{
//	    Grouping: grouping,
//	    Policy:   reconcile.PolicySkip,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Table.Len(), "intervals")
package reconcile
