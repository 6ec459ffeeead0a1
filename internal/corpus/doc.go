// Package corpus loads credential dumps.
//
// A dump is a text file with one colon-delimited record per line:
//
//	username:field1:password[:more fields...]
//
// Only lines with at least three fields and a non-empty third field become
// records. Every other line is skipped without a log entry or an error so
// that dumps in slightly different formats can be loaded as-is.
package corpus
