// Package domain contains the core model shared by the iro packages: configuration, game
// records, positions handed to engines, and error classification.
//
// The domain does not depend on YAML parsing, subprocesses, or the filesystem. Infra adapters
// map into/from these types.
package domain
