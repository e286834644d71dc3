// Package buffer implements the canonical text storage for one editable
// document: a flat mutable rune sequence plus derived indices (line starts,
// first-non-blank offsets, per-rune color classes) that are rebuilt lazily
// by Sync.
//
// Edits never touch the derived indices; they only mark the buffer dirty.
// Every read that depends on a derived index goes through Sync first, so
// callers may interleave edits and reads freely. The whole package assumes
// single-threaded use: one input event is fully processed before the next,
// and no locking is done here.
//
// Storage is a flat array with O(n) shifts per edit. That is an accepted
// trade for the 10 MiB file cap; a gap buffer or piece table could be
// substituted behind the same Buffer interface for larger documents.
package buffer
