package apply

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"lutgrad/imageio"
	"lutgrad/lut"
	"lutgrad/lutfile"
	"lutgrad/parallel"
)

type CLICmd struct {
	Scan   string     `help:"Source folder to scan" default:"."`
	Dest   string     `help:"Destination folder for graded pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"graded"`
	LUT    string     `help:"LUT to apply, .cube or LUT3 RIFF file" required:"" type:"existingfile" name:"lut"`
	Method lut.Method `help:"Interpolation method: trilinear or tetrahedral" default:"tetrahedral"`
	Format string     `help:"Output format of graded image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"${formats}" default:"unsup:png"`
	Resize

	Grid *lut.Grid[float64] `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if err := c.Resize.validate(); err != nil {
		return err
	}

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

// Run grades every image in the scan folder. Files are spread over the pool;
// each file's kernel runs on the worker that picked it up.
func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	slog.Info("applying LUT", "lut", c.LUT, "dim", c.Grid.Dim, "method", c.Method)

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func() {
			filePath := filepath.Join(c.Scan, file.Name())
			logger := slog.Default().With("file", filePath)

			if err := c.process(logger, filePath, file.Name()); err != nil {
				errCount.Add(1)
				logger.Error("could not grade image", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) process(logger *slog.Logger, filePath, fileName string) error {
	img, imgType, err := imageio.Load(filePath)
	if err != nil {
		return err
	}

	if c.Resize.Enabled() {
		img = c.Resize.apply(logger, img)
	}

	batch, alphas, err := imageio.ToBatch(img)
	if err != nil {
		return err
	}

	graded, err := lut.Apply(c.Method, c.Grid, batch, nil)
	if err != nil {
		return fmt.Errorf("could not apply LUT: %w", err)
	}

	destName, outType := imageio.OutputName(fileName, imgType, c.Format)
	if err := imageio.Save(imageio.FromBatch(graded, 0, alphas[0]), outType, c.Dest, destName); err != nil {
		return err
	}
	logger.Debug("graded", "dest", filepath.Join(c.Dest, destName))
	return nil
}
