// Package cmd provides the command-line interface implementation for cachebust.
//
// This package contains all the subcommand implementations for the cachebust CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command, shared engine flags and logging setup
//   - bust, hash, pattern: Operations on individual web paths
//   - manifest: Busts a whole public directory into a JSON manifest
//   - algorithms, seed, version: Utilities
//
// Engine settings come from an optional TOML or YAML file given with --config.
// Flags set on the command line take precedence over the file.
package cmd
