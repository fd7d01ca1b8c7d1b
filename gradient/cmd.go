// Package gradient computes the LUT gradient of a mean squared error between
// graded source images and their targets.
package gradient

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"lutgrad/imageio"
	"lutgrad/lut"
	"lutgrad/lutfile"
	"lutgrad/parallel"
)

type CLICmd struct {
	LUT    string     `help:"LUT to differentiate, .cube or LUT3 RIFF file" required:"" type:"existingfile" name:"lut"`
	Source []string   `help:"Source images, graded through the LUT" required:"" type:"existingfile"`
	Target []string   `help:"Target images, one per source, all the same size" required:"" type:"existingfile"`
	Method lut.Method `help:"Interpolation method used for the forward pass" default:"tetrahedral"`
	Out    string     `help:"Destination gradient file, always written as LUT3 RIFF" required:""`
	Force  bool       `help:"Overwrite an existing destination" short:"f"`

	Grid *lut.Grid[float64] `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if len(c.Source) != len(c.Target) {
		return fmt.Errorf("got %d sources and %d targets", len(c.Source), len(c.Target))
	}
	if lutfile.IsCube(c.Out) {
		return fmt.Errorf("gradients cannot be stored as .cube: %q", c.Out)
	}
	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", c.Out, err)
	}
	c.Out = out

	lf, err := lutfile.Load(c.LUT)
	if err != nil {
		return err
	}
	if lf.Kind != lutfile.KindLUT {
		return fmt.Errorf("%q holds a %v, not a LUT", c.LUT, lf.Kind)
	}
	c.Grid = lf.Grid
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	src, err := loadBatch(c.Source)
	if err != nil {
		return err
	}
	target, err := loadBatch(c.Target)
	if err != nil {
		return err
	}
	if src.Width != target.Width || src.Height != target.Height {
		return fmt.Errorf("sources are %dx%d but targets are %dx%d",
			src.Width, src.Height, target.Width, target.Height)
	}

	grad, loss, err := Compute(c.Method, c.Grid, src, target, pool)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("d(mse)/d(%s)", filepath.Base(c.LUT))
	lf := &lutfile.File{Title: title, Kind: lutfile.KindGradient, Grid: grad}
	if err := lutfile.Save(c.Out, lf, c.Force); err != nil {
		return err
	}

	slog.Info("gradient written", "file", c.Out, "loss", loss, "images", src.N,
		"pixels", src.Pixels(), "method", c.Method)
	return nil
}

// Compute grades src through grid and returns the gradient of the mean squared
// error against target with respect to the grid, along with the loss itself.
func Compute(m lut.Method, grid *lut.Grid[float64], src, target *lut.Batch[float64], pool *parallel.Pool) (*lut.Grid[float64], float64, error) {
	if len(src.Data) != len(target.Data) {
		return nil, 0, fmt.Errorf("source batch holds %d samples, target %d: %w",
			len(src.Data), len(target.Data), lut.ErrInvalidArgument)
	}

	out, err := lut.Apply(m, grid, src, pool)
	if err != nil {
		return nil, 0, fmt.Errorf("forward pass failed: %w", err)
	}

	count := float64(len(out.Data))
	upstream := make([]float64, len(out.Data))
	var loss float64
	for i, v := range out.Data {
		diff := v - target.Data[i]
		loss += diff * diff
		upstream[i] = 2 * diff / count
	}
	loss /= count

	grad := lut.NewGrid[float64](grid.Dim)
	p := lut.NewParams(grid.Dim, src.Width, src.Height, src.N)
	if err := lut.Backward(src.Data, upstream, grad.Data, p, pool); err != nil {
		return nil, 0, fmt.Errorf("backward pass failed: %w", err)
	}
	return grad, loss, nil
}

func loadBatch(paths []string) (*lut.Batch[float64], error) {
	imgs := make([]image.Image, len(paths))
	for i, path := range paths {
		img, _, err := imageio.Load(path)
		if err != nil {
			return nil, err
		}
		imgs[i] = img
	}
	batch, _, err := imageio.ToBatch(imgs...)
	if err != nil {
		return nil, fmt.Errorf("could not batch %v: %w", paths, err)
	}
	return batch, nil
}
