// Package realpath resolves a path to its absolute, symlink-free form
// into a caller-owned, fixed capacity buffer.
//
// It behaves like realpath(3) with a few guarantees the libc routine lacks:
// the output buffer is never grown nor written past its end,
// the number of symlink expansions is bounded by [Config.MaxSymlinks],
// and on failure the buffer holds the canonical prefix resolved before the failing component.
//
// ".." moves up from the resolved form of the preceding name: if that name is a symlink,
// it is expanded first. The name itself is not required to exist,
// so resolving "/a/missing/../b" succeeds if "/a/b" exists.
//
// Paths are always slash-separated.
// Resolution is a plain sequence of Lstat and ReadLink calls,
// thus it is vulnerable to TOCTOU races just like realpath(3).
package realpath
