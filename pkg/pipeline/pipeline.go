// Package pipeline runs analyses and renders on behalf of the CLI and the
// HTTP server, adding result caching around the stateless engine.
//
// A [Runner] fingerprints the raw bead input, looks the result up in its
// cache, and only runs the engine on a miss. Concurrent identical
// requests share one computation. Errors are never cached.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	out, hit, err := runner.Analyze(ctx, engine.OpCriticalPath, raw)
//
// [Runner.Batch] fans several inputs out over a bounded worker group and
// returns results in input order.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/beadgraph/pkg/errors"
)

// DefaultTTL is how long analysis results and renders stay cached.
const DefaultTTL = 24 * time.Hour

// DefaultBatchWorkers bounds the concurrency of [Runner.Batch].
const DefaultBatchWorkers = 8

// Render formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidateFormat checks that format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want dot, svg, png or pdf)", format)
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return fmt.Errorf("formats: %w", err)
		}
	}
	return nil
}
