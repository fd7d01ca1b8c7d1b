package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"log/slog"
	"os"
	"slices"

	"lutgrad/okcolor"
)

var builtin = map[string]func() color.Palette{
	"bw": func() color.Palette {
		return color.Palette{color.Black, color.White}
	},
	"gray16": func() color.Palette {
		pal := make(color.Palette, 16)
		for i := range pal {
			pal[i] = color.Gray{Y: uint8(i * 17)}
		}
		return pal
	},
	"spectra6": func() color.Palette {
		return color.Palette{
			color.RGBA{0x00, 0x00, 0x00, 0xff},
			color.RGBA{0xff, 0xff, 0xff, 0xff},
			color.RGBA{0xff, 0x00, 0x00, 0xff},
			color.RGBA{0xff, 0xff, 0x00, 0xff},
			color.RGBA{0x00, 0xff, 0x00, 0xff},
			color.RGBA{0x00, 0x00, 0xff, 0xff},
		}
	},
	"vga16": func() color.Palette {
		pal := make(color.Palette, 0, 16)
		for _, v := range [][3]uint8{
			{0x00, 0x00, 0x00}, {0x00, 0x00, 0xaa}, {0x00, 0xaa, 0x00}, {0x00, 0xaa, 0xaa},
			{0xaa, 0x00, 0x00}, {0xaa, 0x00, 0xaa}, {0xaa, 0x55, 0x00}, {0xaa, 0xaa, 0xaa},
			{0x55, 0x55, 0x55}, {0x55, 0x55, 0xff}, {0x55, 0xff, 0x55}, {0x55, 0xff, 0xff},
			{0xff, 0x55, 0x55}, {0xff, 0x55, 0xff}, {0xff, 0xff, 0x55}, {0xff, 0xff, 0xff},
		} {
			pal = append(pal, color.RGBA{v[0], v[1], v[2], 0xff})
		}
		return pal
	},
	"web216": func() color.Palette { return slices.Clone(stdpalette.WebSafe) },
	"plan9":  func() color.Palette { return slices.Clone(stdpalette.Plan9) },
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns a built-in palette by name, or reads every palette of a RIFF
// PAL file and concatenates them.
func Load(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return pal(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	return res, nil
}

// Save writes pal to path as a single-palette RIFF PAL file.
func Save(path string, pal color.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", path, closeErr)
		}
	}()

	if _, err = WriteTo(f, []color.Palette{pal}); err != nil {
		return fmt.Errorf("could not write palette file %q: %w", path, err)
	}
	return nil
}

// Lab is a palette converted to Oklab for perceptual nearest-color search.
type Lab []okcolor.Lab

func NewLab(pal color.Palette) Lab {
	p := make(Lab, len(pal))
	for i, col := range pal {
		p[i] = okcolor.LabModel.Convert(col).(okcolor.Lab)
	}
	return p
}

// Index returns the index of the entry closest to lc.
func (p Lab) Index(lc okcolor.Lab) int {
	ret, best := 0, -1.0
	for i, v := range p {
		d := lc.Distance(v)
		if d == 0 {
			return i
		}
		if best < 0 || d < best {
			ret, best = i, d
		}
	}
	return ret
}

func (p Lab) Convert(lc okcolor.Lab) okcolor.Lab {
	if len(p) == 0 {
		return okcolor.Lab{}
	}
	return p[p.Index(lc)]
}
