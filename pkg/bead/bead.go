package bead

// StatusClosed is the only status with engine-defined semantics: a closed
// bead is complete and its outgoing blocks are satisfied.
const StatusClosed = "closed"

// Common status labels. The set is open-ended; these exist for callers
// constructing beads in code and carry no meaning for the engine.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
)

// DefaultDuration is the effective duration of a bead without one.
const DefaultDuration uint32 = 1

// Item is a single bead.
//
// BlockedBy lists the ids this bead depends on (incoming edges) and Blocks
// lists the ids it blocks (outgoing edges). Both are multisets and may
// reference ids that are not part of the same input; how such references
// are treated depends on the operation.
type Item struct {
	ID        string   `json:"id" bson:"id" toml:"id"`
	Title     string   `json:"title" bson:"title" toml:"title"`
	Status    string   `json:"status" bson:"status" toml:"status"`
	Priority  uint32   `json:"priority" bson:"priority" toml:"priority"`
	BlockedBy []string `json:"blocked_by,omitempty" bson:"blocked_by,omitempty" toml:"blocked_by,omitempty"`
	Blocks    []string `json:"blocks,omitempty" bson:"blocks,omitempty" toml:"blocks,omitempty"`
	Duration  *uint32  `json:"duration,omitempty" bson:"duration,omitempty" toml:"duration,omitempty"`
}

// IsClosed reports whether the bead is complete.
func (it Item) IsClosed() bool { return it.Status == StatusClosed }

// EffectiveDuration returns the bead's duration, or DefaultDuration when
// none was declared. A declared duration of zero is kept as zero.
func (it Item) EffectiveDuration() uint32 {
	if it.Duration == nil {
		return DefaultDuration
	}
	return *it.Duration
}

// Dur returns a pointer to d, for building beads with explicit durations.
func Dur(d uint32) *uint32 { return &d }
