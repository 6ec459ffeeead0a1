// Package main provides the entry point for the pwaudit CLI.
//
// pwaudit audits a cleartext credential dump: it measures how the passwords
// were built (lengths, root words, trailing digits and years, calendar
// words, special characters, entropy, masks) and flags credentials that
// belong to a list of high value targets.
//
// Usage:
//
//	pwaudit analyze SUMMARY.txt -t hvt.txt -o PASummary.txt
//	pwaudit history SUMMARY.txt
//
// See --help for all available options.
package main

// main is the entry point for pwaudit.
func main() {
	Execute()
}
