// Package bvh parses, edits, and writes Biovision Hierarchy (.bvh)
// skeletal motion capture files.
//
// A .bvh file has two sections:
//   - HIERARCHY: a nested tree of named joints, each with a rest-pose
//     OFFSET and an ordered CHANNELS list
//   - MOTION: a frame count, a frame time, and one whitespace-separated
//     row of float values per frame
//
// # Data Model
//
// The parsed File stores joints as a flat array in depth-first
// pre-order rather than as a pointer tree. Each Joint carries the
// index of its parent (-1 for the root, always an earlier index) and
// its nesting depth. Channels are numbered sequentially across the
// whole skeleton in traversal order, so a Channel's Index is the
// column of its value in every frame row:
//
//	f, _ := bvh.Parse(text)
//	frame, _ := f.Frame(0)
//	hips := f.Root()
//	x := frame[hips.Channels[0].Index]
//
// # Parsing
//
// Parse and Load are atomic: malformed input yields a typed error
// (LexError, SyntaxError, or SemanticError) and no File. A declared
// frame count that does not match the data rows is an error, never
// silently truncated or padded. LoadFile additionally decompresses
// gzip and zstd content by sniffing magic bytes.
//
// # Writing
//
// Write emits canonical text: tab indentation, LF line endings, and
// fixed fractional precision per section. WriteOptions selects spaces
// or CRLF and adjusts precision for round-trip fidelity.
//
// # Editing
//
// Files can be built from scratch with Builder, and frame sequences
// edited in place with FrameCursor. Mutators preserve the structural
// invariants; Validate checks them explicitly.
package bvh
