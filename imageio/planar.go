package imageio

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"lutgrad/lut"
)

// Alpha holds one image's alpha channel, row-major, 16 bits per sample.
type Alpha []uint16

// ToBatch converts images of equal size into a planar batch of gamma-encoded
// sRGB values in [0, 1], un-premultiplied. The alpha channels are returned
// separately so they can be restored by FromBatch.
func ToBatch(imgs ...image.Image) (*lut.Batch[float64], []Alpha, error) {
	if len(imgs) == 0 {
		return nil, nil, fmt.Errorf("no images to convert")
	}

	size := imgs[0].Bounds().Size()
	batch := lut.NewBatch[float64](len(imgs), size.Y, size.X)
	alphas := make([]Alpha, len(imgs))
	plane := batch.PlaneSize()

	for n, img := range imgs {
		if got := img.Bounds().Size(); got != size {
			return nil, nil, fmt.Errorf("image %d is %v, want %v", n, got, size)
		}

		nrgba := asNRGBA64(img)
		alpha := make(Alpha, plane)
		for y := range size.Y {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := range size.X {
				px := row[8*x:]
				i := y*size.X + x
				batch.SetPixel(n*plane+i,
					float64(uint16(px[0])<<8|uint16(px[1]))/0xffff,
					float64(uint16(px[2])<<8|uint16(px[3]))/0xffff,
					float64(uint16(px[4])<<8|uint16(px[5]))/0xffff)
				alpha[i] = uint16(px[6])<<8 | uint16(px[7])
			}
		}
		alphas[n] = alpha
	}

	return batch, alphas, nil
}

func asNRGBA64(img image.Image) *image.NRGBA64 {
	if nrgba, ok := img.(*image.NRGBA64); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FromBatch renders image n of the batch, clamping values to [0, 1]. A nil
// alpha channel yields an opaque image.
func FromBatch(batch *lut.Batch[float64], n int, alpha Alpha) *image.NRGBA64 {
	dst := image.NewNRGBA64(image.Rect(0, 0, batch.Width, batch.Height))
	plane := batch.PlaneSize()

	for y := range batch.Height {
		row := dst.Pix[y*dst.Stride:]
		for x := range batch.Width {
			i := y*batch.Width + x
			r, g, b := batch.Pixel(n*plane + i)
			a := uint16(0xffff)
			if alpha != nil {
				a = alpha[i]
			}

			px := row[8*x:]
			for k, v := range [4]uint16{to16(r), to16(g), to16(b), a} {
				px[2*k] = uint8(v >> 8)
				px[2*k+1] = uint8(v)
			}
		}
	}
	return dst
}

func to16(v float64) uint16 {
	return uint16(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}
