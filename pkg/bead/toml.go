package bead

import (
	"io"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/beadgraph/pkg/errors"
)

type tomlFile struct {
	Beads []tomlItem `toml:"bead"`
}

// TOML integers are signed 64-bit, so range checks happen after decoding.
type tomlItem struct {
	ID        *string  `toml:"id"`
	Title     *string  `toml:"title"`
	Status    *string  `toml:"status"`
	Priority  *int64   `toml:"priority"`
	BlockedBy []string `toml:"blocked_by"`
	Blocks    []string `toml:"blocks"`
	Duration  *int64   `toml:"duration"`
}

// ReadTOML decodes beads written as [[bead]] tables.
// The same schema and validation rules as [Decode] apply.
func ReadTOML(r io.Reader) ([]Item, error) {
	var file tomlFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml beads")
	}

	items := make([]Item, len(file.Beads))
	for i, tb := range file.Beads {
		w := wireItem{
			ID:        tb.ID,
			Title:     tb.Title,
			Status:    tb.Status,
			BlockedBy: tb.BlockedBy,
			Blocks:    tb.Blocks,
		}
		if tb.Priority != nil {
			p, err := toUint32(*tb.Priority, "priority", i)
			if err != nil {
				return nil, err
			}
			w.Priority = &p
		}
		if tb.Duration != nil {
			d, err := toUint32(*tb.Duration, "duration", i)
			if err != nil {
				return nil, err
			}
			w.Duration = &d
		}
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

func toUint32(v int64, field string, i int) (uint32, error) {
	if v < 0 || v > math.MaxUint32 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "bead %d: %s %d out of range", i, field, v)
	}
	return uint32(v), nil
}
