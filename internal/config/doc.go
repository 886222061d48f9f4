// Package config loads datasets for the orderly tool.
//
// A dataset file holds a settings table and an ordered list of entries:
//
//	[settings]
//	numeric = true      # compare keys as numbers
//	duplicates = false  # allow repeated keys
//	collation = "sv"    # order other keys by a language's collation
//	logLevel = "info"
//
//	[[entries]]
//	key = "10"
//	value = "ten"
//
// The same shape is accepted as YAML or JSON; the format is chosen by file
// extension (see the loader sub-package). Settings can be overridden from the
// environment with ORDERLY_NUMERIC, ORDERLY_DUPLICATES, ORDERLY_COLLATION and
// ORDERLY_LOG_LEVEL.
package config
