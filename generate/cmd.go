package generate

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"lutgrad/lut"
	"lutgrad/lutfile"
	"lutgrad/palette"
	"lutgrad/preset"
)

type CLICmd struct {
	Out       string  `help:"Destination LUT file; .cube is written as text, anything else as LUT3 RIFF" arg:""`
	Dim       int     `help:"Grid points per axis" default:"33"`
	Title     string  `help:"Title stored in the LUT file"`
	Preset    string  `help:"Transform to sample" enum:"identity,adjust,palette,linearize,encode" default:"identity"`
	Lightness float64 `help:"Oklab lightness offset" group:"adjust"`
	Chroma    float64 `help:"Chroma multiplier" default:"1" group:"adjust"`
	Hue       float64 `help:"Hue rotation in degrees" group:"adjust"`
	Palette   string  `help:"Palette name or RIFF PAL file to snap colors to" group:"palette"`
	SavePal   string  `help:"Also store the palette as a RIFF PAL file" group:"palette" name:"save-palette"`
	Force     bool    `help:"Overwrite an existing destination" short:"f"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Dim < 2 || c.Dim > lutfile.MaxDim {
		return fmt.Errorf("grid dimension %d outside [2, %d]", c.Dim, lutfile.MaxDim)
	}
	if c.Chroma < 0 {
		return fmt.Errorf("invalid chroma multiplier: %v", c.Chroma)
	}
	if c.Preset == "palette" {
		if c.Palette == "" {
			return fmt.Errorf("the palette preset needs --palette, one of %v or a PAL file", palette.Names())
		}
		if _, err := palette.Load(c.Palette); err != nil {
			return err
		}
	} else if c.SavePal != "" {
		return fmt.Errorf("--save-palette needs the palette preset")
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", c.Out, err)
	}
	c.Out = out

	if c.Title == "" {
		c.Title = c.Preset
	}
	return nil
}

func (c *CLICmd) Run() error {
	grid, err := c.grid()
	if err != nil {
		return err
	}

	lf := &lutfile.File{Title: c.Title, Kind: lutfile.KindLUT, Grid: grid}
	if err := lutfile.Save(c.Out, lf, c.Force); err != nil {
		return err
	}
	slog.Info("generated LUT", "file", c.Out, "preset", c.Preset, "dim", c.Dim)
	return nil
}

func (c *CLICmd) grid() (*lut.Grid[float64], error) {
	switch c.Preset {
	case "identity":
		return lut.Identity[float64](c.Dim), nil
	case "adjust":
		return preset.Adjust{Lightness: c.Lightness, Chroma: c.Chroma, Hue: c.Hue}.Grid(c.Dim), nil
	case "palette":
		pal, err := palette.Load(c.Palette)
		if err != nil {
			return nil, err
		}
		slog.Debug("snapping to palette", "palette", c.Palette, "colors", len(pal))
		if c.SavePal != "" {
			if err := palette.Save(c.SavePal, pal); err != nil {
				return nil, err
			}
			slog.Info("saved palette", "file", c.SavePal, "colors", len(pal))
		}
		return preset.Snap(c.Dim, palette.NewLab(pal)), nil
	case "linearize":
		return preset.Linearize(c.Dim), nil
	case "encode":
		return preset.Encode(c.Dim), nil
	}
	return nil, fmt.Errorf("unknown preset %q", c.Preset)
}
