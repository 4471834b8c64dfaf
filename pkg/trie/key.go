// SPDX-License-Identifier: MPL-2.0

package trie

import (
	"iter"
	"strings"
)

// Delimiter separates the segments of a key.
const Delimiter = ' '

// Segments returns the segments of key from left to right, split on every
// delimiter the way strings.Split does, so "a " yields "a" and "".
// The empty key yields no segments. The sequence can be iterated any number of times.
func Segments(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if key == "" {
			return
		}
		k := key
		for {
			seg, rest, found := strings.Cut(k, string(Delimiter))
			if !yield(seg) || !found {
				return
			}
			k = rest
		}
	}
}

// FirstSegment returns the leftmost segment of key, or false if key is empty.
func FirstSegment(key string) (string, bool) {
	for seg := range Segments(key) {
		return seg, true
	}
	return "", false
}

// SplitFirst splits key into its first segment and the remainder.
// For a single-segment key the remainder is empty.
func SplitFirst(key string) (first, rest string, ok bool) {
	if key == "" {
		return "", "", false
	}
	first, rest, _ = strings.Cut(key, string(Delimiter))
	return first, rest, true
}

// SplitLast splits key into its last segment and everything before it,
// without the trailing delimiter. For a single-segment key the prefix is empty.
func SplitLast(key string) (last, rest string, ok bool) {
	if key == "" {
		return "", "", false
	}
	i := strings.LastIndexByte(key, Delimiter)
	if i < 0 {
		return key, "", true
	}
	return key[i+1:], key[:i], true
}

// Join returns prefix followed by the delimiter and key.
// If key is empty, prefix is returned unchanged.
//
//	Join("device bundles", "get") == "get device bundles"
//	Join("", "get")               == "get"
func Join(key, prefix string) string {
	if key == "" {
		return prefix
	}
	return prefix + string(Delimiter) + key
}

// SegmentCount returns the number of segments in key.
func SegmentCount(key string) int {
	if key == "" {
		return 0
	}
	return strings.Count(key, string(Delimiter)) + 1
}

// childPath extends the full path of a parent node by one segment.
func childPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return Join(segment, parent)
}
