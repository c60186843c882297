// Package tally counts script filename occurrences across scanned pages and
// ranks them.
//
// An Aggregator is shared by all page-scan workers. Every Increment is
// applied exactly once, so the final counts do not depend on scheduling.
package tally
