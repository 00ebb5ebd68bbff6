// Package overview aggregates the statistics of one batch run.
//
// An [Overview] counts images, interpretation tiers, raw_text fallbacks and
// post-processing corrections, and sums the token usage reported by the
// vision provider. With a [ModelCost] attached, [Overview.Summary] also
// prices that usage. Use [FromContext] to reach the run's Overview from code
// that only has a [context.Context].
package overview
