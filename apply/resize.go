package apply

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Resize describes the optional scaling step run before grading.
type Resize struct {
	Width  int         `help:"Max width" group:"resize"`
	Height int         `help:"Max height" group:"resize"`
	Crop   bool        `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill   string      `help:"If given and not cropping, fill background with this color to reach the destination aspect ratio" group:"resize"`
	Color  color.Color `kong:"-"`
}

func (r *Resize) Enabled() bool {
	return r.Width != 0 || r.Height != 0
}

func (r *Resize) validate() error {
	switch {
	case r.Width < 0:
		return fmt.Errorf("invalid resize width: %d", r.Width)
	case r.Height < 0:
		return fmt.Errorf("invalid resize height: %d", r.Height)
	}

	if !r.Crop && r.Fill != "" {
		c, err := parseHexColor(r.Fill)
		if err != nil {
			return err
		}
		r.Color = c
	}
	return nil
}

// layout computes the source region to sample, the destination canvas and
// the region of the canvas the source lands in.
func (r *Resize) layout(src image.Rectangle) (image.Rectangle, image.Rectangle, image.Rectangle) {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	dw, dh := float64(r.Width), float64(r.Height)
	if dw == 0 {
		dw = sw
	}
	if dh == 0 {
		dh = sh
	}

	canvas := image.Rect(0, 0, int(dw), int(dh))
	target := canvas
	srcAR, dstAR := sw/sh, dw/dh

	switch {
	case r.Crop && srcAR < dstAR:
		d := int(math.Round((sh - sw/dstAR) / 2))
		src.Min.Y += d
		src.Max.Y -= d
	case r.Crop && srcAR > dstAR:
		d := int(math.Round((sw - sh*dstAR) / 2))
		src.Min.X += d
		src.Max.X -= d
	case srcAR < dstAR:
		w := int(math.Round(dh * srcAR))
		if r.Color == nil {
			canvas.Max.X, target.Max.X = w, w
		} else {
			d := (int(dw) - w) / 2
			target.Min.X, target.Max.X = d, d+w
		}
	case srcAR > dstAR:
		h := int(math.Round(dw / srcAR))
		if r.Color == nil {
			canvas.Max.Y, target.Max.Y = h, h
		} else {
			d := (int(dh) - h) / 2
			target.Min.Y, target.Max.Y = d, d+h
		}
	}
	return src, canvas, target
}

func (r *Resize) apply(logger *slog.Logger, img image.Image) image.Image {
	src, canvas, target := r.layout(img.Bounds())
	if src == img.Bounds() && canvas.Size() == src.Size() && target == canvas {
		return img
	}

	logger.Info("resizing", "width", target.Dx(), "height", target.Dy())
	dst := image.NewNRGBA64(canvas)
	if r.Color != nil {
		draw.Draw(dst, canvas, image.NewUniform(r.Color), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dst, target, img, src, draw.Over, nil)
	return dst
}

// parseHexColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA.
func parseHexColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("invalid fill color %q, should start with #", s)
	}

	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, c := range hex {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid fill color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("could not read color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
