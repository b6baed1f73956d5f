// Package config loads mission configurations from JSON files.
//
// The Manager reads mission files from a configuration directory, validates
// them, and caches parsed missions behind a mutex. Config IDs are filenames
// without the .json extension; the default mission is "training" when
// present, otherwise the first valid file, otherwise a built-in minimal
// mission so the server always has something to offer.
package config
