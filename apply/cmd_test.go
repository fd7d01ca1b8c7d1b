package apply

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lutgrad/imageio"
	"lutgrad/lut"
	"lutgrad/lutfile"
	"lutgrad/parallel"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestApplyIdentity(t *testing.T) {
	scan := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(60 * x), G: uint8(100 * y), B: uint8(17*x + 31*y), A: 255})
		}
	}
	writePNG(t, filepath.Join(scan, "a.png"), src)
	writePNG(t, filepath.Join(scan, "b.png"), src)

	lutPath := filepath.Join(t.TempDir(), "identity.cube")
	require.NoError(t, lutfile.Save(lutPath, &lutfile.File{Grid: lut.Identity[float64](9)}, false))

	for _, m := range []lut.Method{lut.Trilinear, lut.Tetrahedral} {
		t.Run(m.String(), func(t *testing.T) {
			dest := m.String()
			cmd := &CLICmd{Scan: scan, Dest: dest, LUT: lutPath, Method: m, Format: "unsup:png"}
			require.NoError(t, cmd.Validate(nil))

			pool := parallel.Start(2)
			defer pool.Close()
			require.NoError(t, cmd.Run(pool))

			for _, name := range []string{"a.png", "b.png"} {
				img, _, err := imageio.Load(filepath.Join(scan, dest, name))
				require.NoError(t, err)
				if img.Bounds() != src.Bounds() {
					t.Fatalf("%s bounds = %v, want %v", name, img.Bounds(), src.Bounds())
				}
				for y := range 3 {
					for x := range 4 {
						got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
						if want := src.NRGBAAt(x, y); got != want {
							t.Errorf("%s (%d, %d) = %v, want %v", name, x, y, got, want)
						}
					}
				}
			}
		})
	}
}

func TestValidateRejectsGradient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grad.lut3")
	lf := &lutfile.File{Kind: lutfile.KindGradient, Grid: lut.NewGrid[float64](2)}
	require.NoError(t, lutfile.Save(path, lf, false))
	cmd := &CLICmd{Scan: t.TempDir(), Dest: "graded", LUT: path}
	require.Error(t, cmd.Validate(nil), "gradient file accepted as LUT")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		err  bool
	}{
		{in: "#fff", want: color.NRGBA{255, 255, 255, 255}},
		{in: "#1234", want: color.NRGBA{0x11, 0x22, 0x33, 0x44}},
		{in: "#102030", want: color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{in: "#10203040", want: color.NRGBA{0x10, 0x20, 0x30, 0x40}},
		{in: "102030", err: true},
		{in: "#12345", err: true},
		{in: "#gggggg", err: true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("parseHexColor(%q) accepted", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	src := image.Rect(0, 0, 200, 100)
	tests := []struct {
		name                string
		resize              Resize
		wantSrc, wantCanvas image.Rectangle
		wantTarget          image.Rectangle
	}{
		{
			name:       "fit width",
			resize:     Resize{Width: 100, Height: 100},
			wantSrc:    src,
			wantCanvas: image.Rect(0, 0, 100, 50),
			wantTarget: image.Rect(0, 0, 100, 50),
		},
		{
			name:       "fill",
			resize:     Resize{Width: 100, Height: 100, Color: color.Black},
			wantSrc:    src,
			wantCanvas: image.Rect(0, 0, 100, 100),
			wantTarget: image.Rect(0, 25, 100, 75),
		},
		{
			name:       "crop",
			resize:     Resize{Width: 100, Height: 100, Crop: true},
			wantSrc:    image.Rect(50, 0, 150, 100),
			wantCanvas: image.Rect(0, 0, 100, 100),
			wantTarget: image.Rect(0, 0, 100, 100),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSrc, gotCanvas, gotTarget := tt.resize.layout(src)
			if gotSrc != tt.wantSrc || gotCanvas != tt.wantCanvas || gotTarget != tt.wantTarget {
				t.Errorf("layout = %v %v %v, want %v %v %v",
					gotSrc, gotCanvas, gotTarget, tt.wantSrc, tt.wantCanvas, tt.wantTarget)
			}
		})
	}
}
