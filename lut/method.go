package lut

import (
	"fmt"
	"strings"
)

// Method selects the forward interpolation.
type Method int

const (
	Trilinear Method = iota
	Tetrahedral
)

func (m Method) String() string {
	switch m {
	case Trilinear:
		return "trilinear"
	case Tetrahedral:
		return "tetrahedral"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "trilinear":
		return Trilinear, nil
	case "tetrahedral":
		return Tetrahedral, nil
	}
	return 0, fmt.Errorf("unknown interpolation method %q: %w", s, ErrInvalidArgument)
}

func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type pixelFunc[T Float] func(grid *Grid[T], r, g, b T) (T, T, T)

func evaluator[T Float](m Method) (pixelFunc[T], error) {
	switch m {
	case Trilinear:
		return trilinearPixel[T], nil
	case Tetrahedral:
		return tetrahedralPixel[T], nil
	}
	return nil, fmt.Errorf("unsupported interpolation %v: %w", m, ErrInvalidArgument)
}
