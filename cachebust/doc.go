// Package cachebust fingerprints static assets and rewrites their public paths.
//
// A fingerprint is a digest of the asset's identity (its modification time,
// or its full content) followed by a seed. Changing the asset, or the seed,
// changes every path that embeds the fingerprint, so clients fetch a fresh
// copy while unchanged assets keep stable, cacheable URLs.
//
// Bust Methods:
//   - File:  /files/styles.css -> /files/3de1e771.styles.css
//   - Path:  /files/styles.css -> /files/3de1e771/styles.css
//   - Query: /files/styles.css -> /files/styles.css?c=3de1e771
//
// An optional prefix is inserted before the fingerprint for File and Path
// (cache-3de1e771). Query never uses the prefix.
//
// Configuration is assembled with a Builder and validated once in Build; the
// resulting Config and the Engine built from it are immutable and safe for
// concurrent use. To change a setting, derive a new Config with
// Config.Builder.
//
// Reverse Matching:
// GeneratePattern and Pattern return an anchored regular expression that
// recognizes any path busted by the configured File or Path method, with the
// named groups "dir" and "file" holding the original path. Recover applies
// it. The Query method has no pattern.
//
// Errors match the package sentinels with errors.Is and carry the offending
// value in *Error.
package cachebust
