// Package main provides the cachebust command-line interface.
//
// cachebust fingerprints static asset web paths with a seeded hash of the
// asset's modification time or contents, so assets can be served with
// far-future cache headers and still update on deploy.
//
// The main binary supports multiple subcommands:
//   - bust: Rewrite web paths using the file, path or query method
//   - hash: Print the fingerprint of web paths
//   - pattern: Print the regular expression that reverses busting
//   - manifest: Write a JSON manifest for a whole public directory
//   - algorithms, seed, version: Utilities
package main
