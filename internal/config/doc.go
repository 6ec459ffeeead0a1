// Package config provides the configuration of a pwaudit run: which dumps
// to analyze, where the high value target list lives, how the report is
// rendered and where run history is stored.
//
// Values are layered: NewConfig defaults, then the optional YAML file
// (.pwaudit), then command line flags.
package config
