// Package analysis holds read-only consumers of a merged interval table.
//
// Every function takes a *reconcile.MergedTable and returns new values; the
// table is never modified. A nil table yields reconcile.ErrStateNotReady and
// an unknown column yields a *reconcile.ConfigurationError.
//
//   - OreWaste splits rock classes by mean grade against a cutoff.
//   - Filter keeps rows matching categorical allow-lists and numeric ranges.
//   - Describe summarises the numeric columns of one rock class.
//   - Histogram bins one numeric column into equal-width classes.
//
// Missing values never satisfy a filter predicate and are ignored by every
// aggregate.
package analysis
