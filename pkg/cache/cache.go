// Package cache stores encoded analysis results keyed by operation and
// input hash.
//
// Three backends implement [Cache]: [FileCache] for the CLI,
// [RedisCache] for servers that share results across processes, and
// [NullCache] when caching is disabled. Keys come from a [Keyer] so that
// hosts can namespace them (see [ScopedKeyer]).
//
// Results are pure functions of their input, so entries never need
// invalidation beyond their TTL. Errors are never cached.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A zero TTL means the entry does not expire.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// keyVersion is bumped whenever the encoding of any result changes.
const keyVersion = "v1"

// Keyer derives cache keys.
type Keyer interface {
	// AnalysisKey identifies the result of op over an input whose
	// content hash is inputHash.
	AnalysisKey(op, inputHash string) string

	// RenderKey identifies a rendered graph artifact.
	RenderKey(inputHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the rendering options that affect the artifact bytes.
type RenderKeyOpts struct {
	Format     string `json:"format"`
	Critical   bool   `json:"critical"`
	ShowClosed bool   `json:"show_closed"`
	RankDir    string `json:"rank_dir"`
	Reduce     bool   `json:"reduce"`
	Detailed   bool   `json:"detailed"`
}

// DefaultKeyer produces keys of the form "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(op, inputHash string) string {
	return hashKey("analysis", keyVersion, op, inputHash)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return hashKey("render", keyVersion, inputHash, opts)
}
