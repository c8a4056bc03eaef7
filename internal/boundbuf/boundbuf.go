// Package boundbuf implements capacity-checked writes into fixed size,
// NUL-terminated byte buffers.
//
// A buffer never grows. len(b) is its capacity and the live string is b[:Len(b)].
// Every write keeps one byte for the terminating NUL, so the longest string
// a buffer can hold is len(b)-1 bytes.
//
// Writers share a sticky overflow flag. Once a write did not fit, the flag is set
// and every later Copy or Cat through the same flag is a no-op.
package boundbuf

import "bytes"

// Len returns the length of the NUL-terminated string held by b.
// If b has no NUL, len(b) is returned.
func Len(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}

// Copy replaces the content of dst with src and returns the new length.
//
// If src does not fit, as many bytes as fit are written, *overflow is set and
// dst stays NUL-terminated. If *overflow is already set, Copy writes nothing.
func Copy(dst []byte, src string, overflow *bool) int {
	if *overflow {
		return Len(dst)
	}
	return write(dst, 0, src, overflow)
}

// Cat appends src to the string held by dst and returns the new length.
//
// Cat has the same overflow behavior as Copy.
func Cat(dst []byte, src string, overflow *bool) int {
	if *overflow {
		return Len(dst)
	}
	return write(dst, Len(dst), src, overflow)
}

func write(dst []byte, off int, src string, overflow *bool) int {
	if off >= len(dst) {
		// no room even for the terminator.
		*overflow = true
		return off
	}
	n := copy(dst[off:len(dst)-1], src)
	dst[off+n] = 0
	if n < len(src) {
		*overflow = true
	}
	return off + n
}

// Truncate cuts the string held by b down to n bytes.
// n larger than the current length is ignored.
func Truncate(b []byte, n int) int {
	if cur := Len(b); n >= cur {
		return cur
	}
	if n < 0 {
		n = 0
	}
	b[n] = 0
	return n
}

// Backup removes the last slash-separated element from the path held in b[:n]
// and returns the new length.
//
// Trailing separators are ignored. Backup never shortens an absolute path past its root:
// "/a/b" becomes "/a", "/a" becomes "/" and "/" stays "/".
func Backup(b []byte, n int) int {
	for n > 1 && b[n-1] == '/' {
		n--
	}
	for n > 0 && b[n-1] != '/' {
		n--
	}
	// n now points just past the separator; drop it unless it is the root.
	if n > 1 {
		n--
	}
	if n < len(b) {
		b[n] = 0
	}
	return n
}
