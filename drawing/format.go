package drawing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"honnef.co/go/spiro/plate"
)

// Format is a file format for drawings.
type Format int

const (
	JSON Format = iota
	YAML
	// Plate files hold shapes only. Styles, guides and the canvas size are
	// lost when saving, and defaulted when loading.
	Plate
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Plate:
		return "plate"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks a format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".plate", ".sp":
		return Plate, nil
	default:
		return 0, fmt.Errorf("drawing: unknown format for %q", path)
	}
}

// Load reads a drawing from r.
func Load(r io.Reader, f Format) (*Drawing, error) {
	switch f {
	case JSON:
		d := &Drawing{}
		if err := json.NewDecoder(r).Decode(d); err != nil {
			return nil, fmt.Errorf("drawing: decoding JSON: %w", err)
		}
		return d, nil
	case YAML:
		d := &Drawing{}
		if err := yaml.NewDecoder(r).Decode(d); err != nil {
			return nil, fmt.Errorf("drawing: decoding YAML: %w", err)
		}
		return d, nil
	case Plate:
		shapes, err := plate.Read(r)
		if err != nil {
			return nil, err
		}
		d := New(DefaultWidth, DefaultHeight)
		for _, s := range shapes {
			d.Shapes = append(d.Shapes, FromSpiro(s))
		}
		return d, nil
	default:
		return nil, fmt.Errorf("drawing: unsupported format %v", f)
	}
}

// Save writes d to w.
func Save(w io.Writer, d *Drawing, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case Plate:
		return plate.Write(w, d.Spiro())
	default:
		return fmt.Errorf("drawing: unsupported format %v", f)
	}
}

// LoadFile reads a drawing from a file, using its extension to pick the
// format.
func LoadFile(path string) (*Drawing, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Load(fd, f)
}

// SaveFile writes a drawing to a file, using its extension to pick the
// format.
func SaveFile(d *Drawing, path string) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()
	return Save(fd, d, f)
}
