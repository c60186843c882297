// Package model defines the data structures shared by the scan pipeline and
// the report writers.
//
// This package contains the following main types:
//   - Report: the result of one search-and-scan run
//   - PageResult: the outcome of scanning a single result page
//   - ScriptCount: one ranked script filename with its occurrence count
//
// The models are serializable to JSON for report output.
package model
