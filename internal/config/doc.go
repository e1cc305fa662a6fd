// Package config assembles the application configuration from several
// sources and validates the result.
//
// Sources are merged in priority order: environment variables first, then
// command-line flags, then a JSON config file. A field set by a
// higher-priority source is never overwritten by a lower one; whatever is
// still unset after the merge takes a package default.
//
// The main entry point is [GetStructuredConfig].
package config
