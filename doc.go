package keyset

// Package keyset implements cursor-based (keyset / seek-method) pagination
// for GORM queries.
//
// Overview
//
// Given an ordered query, a list of sort fields and an opaque cursor, the
// engine returns the next (or previous) page of results together with
// cursors the caller can use to keep walking the result set in either
// direction. The cursor encodes the actual boundary-row values of the sort
// fields; paginating decodes it back into a lexicographic seek predicate
// appended to the original query.
//
// Key concepts
//   - Fields: the ordered list of columns pagination walks, each carrying a
//     direction and a TypeTag used to round-trip its values through a cursor.
//   - Cursor: the opaque, URL-safe cursor, encoded and decoded by
//     EncodeCursor / DecodeCursor.
//   - Config / Options: the functional-options builder for a single paginate call.
//   - Page / Metadata: the result container, including the before/after cursors.
//
// The engine is stateless: it holds no connections, no caches, nothing
// persists between calls.
