// Package util provides the hashing and filesystem building blocks for cachebust.
//
// This package holds the pieces that the cachebust engine treats as external
// collaborators: the hash provider and the filesystem.
//
// Hashing:
//   - A registry of named algorithms (crc32, sha256, blake3, xxh64, ...)
//   - Every algorithm renders lowercase hex and records its digest length,
//     which the pattern generator relies on
//   - Custom algorithms can be added with RegisterAlgorithm
//
// Filesystem:
//   - FileSystem interface with Stat and ReadFile
//   - OSFileSystem for host paths and FromFS for fs.FS trees such as embed.FS
//   - DirExists, FileExists and ModTime helpers
//
// The registry is safe for concurrent use. FileSystem implementations are
// expected to be read-only.
package util
