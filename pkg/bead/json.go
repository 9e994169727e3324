package bead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/beadgraph/pkg/errors"
)

// wireItem mirrors Item with pointer fields so that missing required
// fields can be told apart from zero values.
type wireItem struct {
	ID        *string  `json:"id"`
	Title     *string  `json:"title"`
	Status    *string  `json:"status"`
	Priority  *uint32  `json:"priority"`
	BlockedBy []string `json:"blocked_by"`
	Blocks    []string `json:"blocks"`
	Duration  *uint32  `json:"duration"`
}

// Decode parses a JSON array of beads and validates it.
//
// Decode returns an errors.ErrCodeInvalidInput error if data is not a
// JSON array, if a bead is missing a required field, if a numeric field
// is negative or overflows 32 bits, or if ids are invalid or duplicated.
// Unknown fields are ignored.
func Decode(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input must be a JSON array of beads")
	}

	var wire []wireItem
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode beads")
	}

	items := make([]Item, len(wire))
	for i, w := range wire {
		it, err := w.item(i)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}

	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (w wireItem) item(i int) (Item, error) {
	switch {
	case w.ID == nil:
		return Item{}, errors.New(errors.ErrCodeInvalidInput, "bead %d: missing field \"id\"", i)
	case w.Title == nil:
		return Item{}, errors.New(errors.ErrCodeInvalidInput, "bead %q: missing field \"title\"", *w.ID)
	case w.Status == nil:
		return Item{}, errors.New(errors.ErrCodeInvalidInput, "bead %q: missing field \"status\"", *w.ID)
	case w.Priority == nil:
		return Item{}, errors.New(errors.ErrCodeInvalidInput, "bead %q: missing field \"priority\"", *w.ID)
	}
	return Item{
		ID:        *w.ID,
		Title:     *w.Title,
		Status:    *w.Status,
		Priority:  *w.Priority,
		BlockedBy: w.BlockedBy,
		Blocks:    w.Blocks,
		Duration:  w.Duration,
	}, nil
}

// Validate checks that every id is well formed and unique.
// Errors carry errors.ErrCodeInvalidInput and wrap the id-level cause.
func Validate(items []Item) error {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if err := errors.ValidateID(it.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "bead %d", i)
		}
		if prev, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate bead id %q (beads %d and %d)", it.ID, prev, i)
		}
		seen[it.ID] = i
	}
	return nil
}

// ReadJSON reads all of r and decodes it with [Decode].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read beads: %w", err)
	}
	return Decode(data)
}

// WriteJSON encodes items as an indented JSON array.
// A nil slice is written as an empty array.
func WriteJSON(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "encode beads")
	}
	return nil
}
