package lutfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/image/riff"

	"lutgrad/lut"
)

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	lutType  = riff.FourCC{'L', 'U', 'T', '3'}
	headType = riff.FourCC{'h', 'e', 'a', 'd'}
	nameType = riff.FourCC{'n', 'a', 'm', 'e'}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const (
	riffVersion = 1
	headSize    = 6 // version u16, dim u16, kind u8, reserved u8
)

// ReadRIFF decodes a LUT3 RIFF stream: a head chunk, an optional name chunk
// and a data chunk of little-endian float32 samples in [3][dim][dim][dim]
// order.
func ReadRIFF(r io.Reader) (*File, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != lutType {
		return nil, fmt.Errorf("unsupported RIFF content type %q: %w", string(formType[:]), ErrFormat)
	}

	var (
		res     File
		dim     int
		hasData bool
	)
	for {
		id, size, data, err := rd.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("could not read chunk: %w", err)
		}

		switch id {
		case headType:
			if size != headSize {
				return nil, fmt.Errorf("head chunk of %d bytes: %w", size, ErrFormat)
			}
			var head [headSize]byte
			if _, err := io.ReadFull(data, head[:]); err != nil {
				return nil, fmt.Errorf("could not read head chunk: %w", err)
			}
			if v := binary.LittleEndian.Uint16(head[0:]); v != riffVersion {
				return nil, fmt.Errorf("unsupported version %d: %w", v, ErrFormat)
			}
			dim = int(binary.LittleEndian.Uint16(head[2:]))
			if dim < 2 || dim > MaxDim {
				return nil, fmt.Errorf("grid dimension %d: %w", dim, ErrFormat)
			}
			res.Kind = Kind(head[4])
			if res.Kind != KindLUT && res.Kind != KindGradient {
				return nil, fmt.Errorf("unknown kind %d: %w", head[4], ErrFormat)
			}
		case nameType:
			name, err := io.ReadAll(data)
			if err != nil {
				return nil, fmt.Errorf("could not read name chunk: %w", err)
			}
			res.Title = string(name)
		case dataType:
			if dim == 0 {
				return nil, fmt.Errorf("data chunk before head chunk: %w", ErrFormat)
			}
			if want := 4 * 3 * dim * dim * dim; int(size) != want {
				return nil, fmt.Errorf("data chunk of %d bytes, want %d: %w", size, want, ErrFormat)
			}
			grid := lut.NewGrid[float64](dim)
			buf := make([]byte, size)
			if _, err := io.ReadFull(data, buf); err != nil {
				return nil, fmt.Errorf("could not read data chunk: %w", err)
			}
			for i := range grid.Data {
				grid.Data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:])))
			}
			res.Grid = grid
			hasData = true
		default:
			return nil, fmt.Errorf("unsupported chunk type %q: %w", string(id[:]), ErrFormat)
		}
	}

	if !hasData {
		return nil, fmt.Errorf("missing data chunk: %w", ErrFormat)
	}
	return &res, nil
}

func WriteRIFF(w io.Writer, lf *File) error {
	dim := lf.Grid.Dim
	if dim < 2 || dim > MaxDim {
		return fmt.Errorf("grid dimension %d: %w", dim, ErrFormat)
	}

	chunks := make([]byte, 0, 2*8+headSize+len(lf.Title)+1+4*len(lf.Grid.Data))

	head := binary.LittleEndian.AppendUint16(nil, riffVersion)
	head = binary.LittleEndian.AppendUint16(head, uint16(dim))
	head = append(head, byte(lf.Kind), 0)
	chunks = appendChunk(chunks, headType, head)

	if lf.Title != "" {
		chunks = appendChunk(chunks, nameType, []byte(lf.Title))
	}

	data := make([]byte, 0, 4*len(lf.Grid.Data))
	for _, v := range lf.Grid.Data {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v)))
	}
	chunks = appendChunk(chunks, dataType, data)

	out := make([]byte, 0, 12+len(chunks))
	out = append(out, riffType[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(chunks)))
	out = append(out, lutType[:]...)
	out = append(out, chunks...)

	return writeBytes(w, out)
}

// appendChunk adds one chunk, padded to an even length.
func appendChunk(buf []byte, id riff.FourCC, payload []byte) []byte {
	buf = append(buf, id[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	if len(payload)%2 == 1 {
		buf = append(buf, 0)
	}
	return buf
}
