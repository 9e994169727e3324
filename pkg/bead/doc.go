// Package bead defines the work item ("bead") consumed by the graph engine
// and the codecs that decode beads at the input boundary.
//
// # Overview
//
// A bead is a unit of work with an id, a status, two redundant views of
// its dependency edges and an optional duration:
//
//	[
//	  {"id": "a", "title": "Schema", "status": "open", "priority": 1,
//	   "blocks": ["b"], "duration": 10},
//	  {"id": "b", "title": "API", "status": "open", "priority": 2,
//	   "blocked_by": ["a"]}
//	]
//
// Only the "closed" status carries meaning for the engine. Title and
// priority are opaque and never read by any analysis.
//
// # Decoding
//
// [Decode] and [ReadJSON] parse a JSON array of beads and enforce the input
// schema: id, title, status and priority are required, ids must be valid
// and unique, and numeric fields must be non-negative 32-bit integers.
// Every failure is an [errors.ErrCodeInvalidInput] error, which is the
// "parse error" kind of the engine's error taxonomy.
//
// [ReadTOML] accepts the same fields written as [[bead]] tables, which is
// convenient for hand-maintained plans:
//
//	[[bead]]
//	id = "a"
//	title = "Schema"
//	status = "open"
//	priority = 1
//	blocks = ["b"]
//	duration = 10
//
// # Encoding
//
// [WriteJSON] writes beads back in the input format. Decoding the output
// yields the same beads.
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/beadgraph/pkg/errors.ErrCodeInvalidInput
package bead
