package generate

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lutgrad/lut"
	"lutgrad/lutfile"
	"lutgrad/palette"
)

func TestGenerateIdentity(t *testing.T) {
	for _, name := range []string{"identity.cube", "identity.lut3"} {
		t.Run(name, func(t *testing.T) {
			cmd := &CLICmd{Out: filepath.Join(t.TempDir(), name), Dim: 5, Preset: "identity", Chroma: 1}
			require.NoError(t, cmd.Validate(nil))
			require.NoError(t, cmd.Run())

			lf, err := lutfile.Load(cmd.Out)
			require.NoError(t, err)
			if lf.Kind != lutfile.KindLUT {
				t.Errorf("kind = %v, want lut", lf.Kind)
			}
			if lf.Title != "identity" {
				t.Errorf("title = %q, want identity", lf.Title)
			}
			want := lut.Identity[float64](5)
			for i, v := range want.Data {
				if math.Abs(lf.Grid.Data[i]-v) > 1e-6 {
					t.Fatalf("element %d = %v, want %v", i, lf.Grid.Data[i], v)
				}
			}
		})
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	cmd := &CLICmd{Out: filepath.Join(t.TempDir(), "lut.cube"), Dim: 3, Preset: "encode", Chroma: 1}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())
	require.Error(t, cmd.Run(), "existing file overwritten without force")
	cmd.Force = true
	require.NoError(t, cmd.Run())
}

func TestGenerateSavesPalette(t *testing.T) {
	dir := t.TempDir()
	cmd := &CLICmd{
		Out:     filepath.Join(dir, "vga.lut3"),
		Dim:     3,
		Preset:  "palette",
		Chroma:  1,
		Palette: "vga16",
		SavePal: filepath.Join(dir, "vga.pal"),
	}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())

	want, err := palette.Load("vga16")
	require.NoError(t, err)
	got, err := palette.Load(cmd.SavePal)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, color.RGBAModel.Convert(want[i]), got[i], "color %d", i)
	}

	cmd = &CLICmd{Out: filepath.Join(dir, "id.lut3"), Dim: 3, Preset: "identity", Chroma: 1, SavePal: cmd.SavePal}
	assert.Error(t, cmd.Validate(nil))
}

func TestGeneratePresets(t *testing.T) {
	tests := []struct {
		cmd CLICmd
		err bool
	}{
		{cmd: CLICmd{Preset: "adjust", Dim: 3, Chroma: 0.5, Hue: 30}},
		{cmd: CLICmd{Preset: "palette", Dim: 3, Chroma: 1, Palette: "bw"}},
		{cmd: CLICmd{Preset: "linearize", Dim: 3, Chroma: 1}},
		{cmd: CLICmd{Preset: "palette", Dim: 3, Chroma: 1}, err: true},
		{cmd: CLICmd{Preset: "palette", Dim: 3, Chroma: 1, Palette: "no-such-palette"}, err: true},
		{cmd: CLICmd{Preset: "identity", Dim: 1, Chroma: 1}, err: true},
		{cmd: CLICmd{Preset: "adjust", Dim: 3, Chroma: -1}, err: true},
	}
	for _, tt := range tests {
		cmd := tt.cmd
		cmd.Out = filepath.Join(t.TempDir(), "out.lut3")
		err := cmd.Validate(nil)
		if tt.err {
			if err == nil {
				t.Errorf("%+v accepted", tt.cmd)
			}
			continue
		}
		if err != nil {
			t.Errorf("%+v: %v", tt.cmd, err)
			continue
		}
		if err := cmd.Run(); err != nil {
			t.Errorf("%+v: %v", tt.cmd, err)
		}
	}
}
