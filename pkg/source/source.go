// Package source loads bead lists from files, streams and MongoDB.
//
// Every [Source] yields a JSON bead array, the form the engine and the
// result cache work on. JSON files are passed through byte for byte so
// that identical files share cache entries; other inputs are decoded,
// validated and re-encoded.
package source

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/errors"
)

// Source produces a JSON bead array.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	// Name identifies the source in logs.
	Name() string
}

// Format is an on-disk bead encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Items loads src and decodes the result.
func Items(ctx context.Context, src Source) ([]bead.Item, error) {
	raw, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return bead.Decode(raw)
}

// encode validates items and renders them as a compact JSON array.
func encode(items []bead.Item) ([]byte, error) {
	if err := bead.Validate(items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []bead.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode beads")
	}
	return data, nil
}
