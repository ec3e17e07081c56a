// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// IndexOf returns the index of the given node in the given slice,
// or -1 if it is not found. The optional startIndex argument
// allows for optimized bidirectional searching if you have a guess
// at where the node might be, which can be a key speedup for large
// slices. If no value is specified for startIndex, it starts in the
// middle, which is a good default.
func IndexOf(slice []Node, child Node, startIndex ...int) int {
	return findFunc(slice, func(e Node) bool { return e == child }, startIndex...)
}

// IndexByName returns the index of the first element in the given slice that
// has the given name, or -1 if none is found. See [IndexOf] for info on startIndex.
func IndexByName(slice []Node, name string, startIndex ...int) int {
	return findFunc(slice, func(ch Node) bool { return ch.AsTree().Name == name }, startIndex...)
}

// findFunc searches outward in both directions from startIndex for an
// element matching match. Without a match anywhere it returns -1.
// Since the search is bidirectional, the match it returns is the one
// closest to startIndex, which is the first one when startIndex is 0.
func findFunc[E any](s []E, match func(e E) bool, startIndex ...int) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	si := -1
	if len(startIndex) > 0 {
		si = startIndex[0]
	}
	if si < 0 {
		si = 0
	}
	if si >= n {
		si = n - 1
	}
	if si == 0 {
		for i, e := range s {
			if match(e) {
				return i
			}
		}
		return -1
	}
	for d := 0; si-d >= 0 || si+d+1 < n; d++ {
		if i := si - d; i >= 0 && match(s[i]) {
			return i
		}
		if i := si + d + 1; i < n && match(s[i]) {
			return i
		}
	}
	return -1
}
