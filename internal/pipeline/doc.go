// Package pipeline runs a search-and-scan job as a sequence of steps.
//
// A run has three steps that share one *model.Report:
//  1. SearchStep fetches the search-results page and extracts the result links.
//  2. ScanStep fetches every result page concurrently (BatchProcessor, built
//     on errgroup) and feeds each page's script filenames into a shared
//     tally.Aggregator.
//  3. RankStep copies the top entries of the aggregator into the report.
//
// A failure on one result page is recorded in its model.PageResult and never
// stops the other scans. DefaultPipeline continues past a failed search step
// so a run always ends with a (possibly empty) ranking.
package pipeline
