// Package search merges on-device and web search results into the single
// ordered list a launcher's unified search UI renders.
//
// Results are modelled as *Target records. The package carries the extras
// key tables that other components read from a target (or its action) and
// the two placeholder records (empty divider, section header) the merge
// inserts between blocks.
//
// # Merging
//
//	merged := search.Merge(webTargets, deviceTargets, search.MergeOptions{
//	    AllAppsWebCount: 3,
//	})
//
// Merge mutates the extras of some input records in place (proxy web item,
// quick launch). Divider and header records are freshly allocated on every
// call, so callers may mutate returned records freely.
package search
