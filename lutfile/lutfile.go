// Package lutfile reads and writes 3D LUTs as .cube text files and as a
// compact RIFF container that can also carry LUT gradients.
package lutfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lutgrad/lut"
)

type Kind uint8

const (
	KindLUT Kind = iota
	KindGradient
)

func (k Kind) String() string {
	switch k {
	case KindLUT:
		return "lut"
	case KindGradient:
		return "gradient"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// File is a LUT or LUT gradient with its metadata.
type File struct {
	Title string
	Kind  Kind
	Grid  *lut.Grid[float64]
}

var ErrFormat = errors.New("malformed LUT file")

// MaxDim is the largest grid dimension either format reads or writes.
const MaxDim = 256

// IsCube reports whether path names a .cube file; anything else is RIFF.
func IsCube(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cube")
}

func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open LUT file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close LUT file", "name", path, "error", closeErr)
		}
	}()

	var res *File
	if IsCube(path) {
		res, err = ReadCube(f)
	} else {
		res, err = ReadRIFF(f)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read LUT file %q: %w", path, err)
	}
	return res, nil
}

// Save writes the file through a temporary file renamed into place. An
// existing destination is only replaced when overwrite is set.
func Save(path string, lf *File, overwrite bool) (err error) {
	if !overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			return fmt.Errorf("destination file already exists: %q", path)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", path, statErr)
		}
	}

	write := WriteRIFF
	if IsCube(path) {
		write = WriteCube
	}

	out, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			if closeErr := out.Close(); closeErr != nil {
				slog.Error("could not close temporary file", "name", out.Name(), "error", closeErr)
			}
		}
		if rmErr := os.Remove(out.Name()); rmErr != nil {
			slog.Error("could not remove temporary file", "name", out.Name(), "error", rmErr)
		}
	}()

	if err = write(out, lf); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("could not flush %q: %w", path, err)
	}
	closed = true
	if err = out.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", path, err)
	}
	if err = os.Rename(out.Name(), path); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", path, err)
	}
	return nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}
	return nil
}
