// Package main provides the entry point for the jsrank CLI.
//
// jsrank runs a web search, visits every result page and reports the
// JavaScript files those pages reference most often.
//
// Usage:
//
//	jsrank search <term>
//	jsrank search --json --top 10 <term>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
