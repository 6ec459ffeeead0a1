// Package analysis computes the per-password and corpus-wide metrics of a
// credential dump: Shannon entropy, root words, trailing digit and year
// patterns, calendar words, special characters and character class masks.
//
// Every function in this package is pure. The calendar lexicons are fixed
// English tables built once at package initialization.
package analysis
