package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/errors"
)

// File reads beads from a path. The format follows the extension:
// ".toml" is TOML, anything else is JSON.
type File struct {
	Path string
}

// Name implements Source.
func (f File) Name() string { return f.Path }

// Format reports the encoding chosen for f.
func (f File) Format() Format {
	if strings.EqualFold(filepath.Ext(f.Path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Load implements Source.
func (f File) Load(ctx context.Context) ([]byte, error) {
	if err := errors.ValidatePath(f.Path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "bead file %s", f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return Reader{R: bytes.NewReader(data), Format: f.Format(), Label: f.Path}.Load(ctx)
}

// Reader reads beads from a stream such as stdin.
type Reader struct {
	R      io.Reader
	Format Format
	Label  string
}

// Name implements Source.
func (r Reader) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return "stdin"
}

// Load implements Source. It does not close R.
func (r Reader) Load(context.Context) ([]byte, error) {
	if r.Format == FormatTOML {
		items, err := bead.ReadTOML(r.R)
		if err != nil {
			return nil, err
		}
		return encode(items)
	}
	data, err := io.ReadAll(r.R)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Name(), err)
	}
	return data, nil
}

// Open returns the source for a CLI argument: "-" is stdin (JSON unless
// format says otherwise), anything else a [File].
func Open(arg string, stdin io.Reader, format Format) Source {
	if arg == "-" {
		return Reader{R: stdin, Format: format}
	}
	return File{Path: arg}
}
