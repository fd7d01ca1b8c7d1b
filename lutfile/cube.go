package lutfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lutgrad/lut"
)

// ReadCube parses an Adobe/Resolve .cube 3D LUT. Data lines list output
// triplets with red varying fastest. Only the unit input domain is supported.
func ReadCube(r io.Reader) (*File, error) {
	res := &File{Kind: KindLUT}
	sc := bufio.NewScanner(r)

	var (
		line  int
		count int
		total int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "TITLE":
			res.Title = parseTitle(strings.TrimSpace(strings.TrimPrefix(text, "TITLE")))
			continue
		case "LUT_3D_SIZE":
			if res.Grid != nil {
				return nil, fmt.Errorf("line %d: duplicate LUT_3D_SIZE: %w", line, ErrFormat)
			}
			dim, err := parseSize(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			res.Grid = lut.NewGrid[float64](dim)
			total = dim * dim * dim
			continue
		case "LUT_1D_SIZE":
			return nil, fmt.Errorf("line %d: 1D LUTs are not supported: %w", line, ErrFormat)
		case "DOMAIN_MIN", "DOMAIN_MAX":
			want := 0.0
			if fields[0] == "DOMAIN_MAX" {
				want = 1
			}
			v, err := parseTriplet(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if v != [3]float64{want, want, want} {
				return nil, fmt.Errorf("line %d: unsupported %s %v: %w", line, fields[0], v, ErrFormat)
			}
			continue
		case "LUT_3D_INPUT_RANGE":
			continue
		}

		if res.Grid == nil {
			return nil, fmt.Errorf("line %d: data before LUT_3D_SIZE: %w", line, ErrFormat)
		}
		if count == total {
			return nil, fmt.Errorf("line %d: more than %d entries: %w", line, total, ErrFormat)
		}
		v, err := parseTriplet(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		dim := res.Grid.Dim
		res.Grid.Set(count%dim, count/dim%dim, count/(dim*dim), v[0], v[1], v[2])
		count++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if res.Grid == nil {
		return nil, fmt.Errorf("missing LUT_3D_SIZE: %w", ErrFormat)
	}
	if count != total {
		return nil, fmt.Errorf("found %d entries, want %d: %w", count, total, ErrFormat)
	}
	return res, nil
}

func parseSize(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("LUT_3D_SIZE takes one value: %w", ErrFormat)
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("invalid LUT_3D_SIZE %q: %w", fields[1], ErrFormat)
	}
	if dim < 2 || dim > MaxDim {
		return 0, fmt.Errorf("LUT_3D_SIZE %d outside [2, %d]: %w", dim, MaxDim, ErrFormat)
	}
	return dim, nil
}

func parseTriplet(fields []string) ([3]float64, error) {
	var v [3]float64
	if len(fields) != 3 {
		return v, fmt.Errorf("want 3 values, got %d: %w", len(fields), ErrFormat)
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, fmt.Errorf("invalid number %q: %w", f, ErrFormat)
		}
		v[i] = x
	}
	return v, nil
}

// parseTitle undoes the quoting WriteCube applies. Titles written by other
// tools are not always valid Go strings, so those only lose their quotes.
func parseTitle(s string) string {
	if title, err := strconv.Unquote(s); err == nil {
		return title
	}
	return strings.Trim(s, `"`)
}

// WriteCube stores a LUT as .cube text. Gradients have no .cube form.
func WriteCube(w io.Writer, lf *File) error {
	if lf.Kind != KindLUT {
		return fmt.Errorf("cannot store a %v as .cube: %w", lf.Kind, ErrFormat)
	}

	bw := bufio.NewWriter(w)
	if lf.Title != "" {
		fmt.Fprintf(bw, "TITLE %q\n", lf.Title)
	}
	dim := lf.Grid.Dim
	fmt.Fprintf(bw, "LUT_3D_SIZE %d\n", dim)
	fmt.Fprintln(bw, "DOMAIN_MIN 0.0 0.0 0.0")
	fmt.Fprintln(bw, "DOMAIN_MAX 1.0 1.0 1.0")

	for b := range dim {
		for g := range dim {
			for r := range dim {
				fmt.Fprintf(bw, "%s %s %s\n",
					formatValue(lf.Grid.At(0, r, g, b)),
					formatValue(lf.Grid.At(1, r, g, b)),
					formatValue(lf.Grid.At(2, r, g, b)))
			}
		}
	}
	return bw.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
