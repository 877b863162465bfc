package cloak

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"

	"golang.org/x/image/bmp"
)

// ImageCarrier is a raster image normalised to 8-bit non-premultiplied RGBA.
//
// Embedding covers the R, G and B bytes of every pixel, rows top to bottom
// and pixels left to right. Alpha is never modified.
type ImageCarrier struct {
	img    *image.NRGBA
	format string
}

// DecodeImageCarrier decodes a PNG, BMP, GIF or JPEG image into a carrier.
func DecodeImageCarrier(data []byte) (*ImageCarrier, error) {
	if len(data) == 0 {
		return nil, newCarrierError(KindImage, "", errors.New("empty input"))
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newCarrierError(KindImage, "", err)
	}
	if !IsValidImageFormat(format) {
		return nil, newCarrierError(KindImage, format, nil)
	}

	return &ImageCarrier{img: toNRGBA(src), format: format}, nil
}

// toNRGBA copies src into a zero-origin NRGBA image. NRGBA sources are
// copied byte for byte so semi-transparent pixels keep their exact colour
// values.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if s, ok := src.(*image.NRGBA); ok {
		for y := range h {
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*w], s.Pix[i:i+4*w])
		}
		return dst
	}

	for y := range h {
		for x := range w {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

// Kind implements Carrier.
func (c *ImageCarrier) Kind() CarrierKind { return KindImage }

// Format implements Carrier.
func (c *ImageCarrier) Format() string { return c.format }

// Width returns the image width in pixels.
func (c *ImageCarrier) Width() int { return c.img.Rect.Dx() }

// Height returns the image height in pixels.
func (c *ImageCarrier) Height() int { return c.img.Rect.Dy() }

// Channels returns the number of bytes stored per pixel (R, G, B, A).
func (c *ImageCarrier) Channels() int { return 4 }

// Image returns the underlying pixel buffer.
func (c *ImageCarrier) Image() *image.NRGBA { return c.img }

// CapacityBits implements Carrier: three covered bytes per pixel.
func (c *ImageCarrier) CapacityBits() int {
	return c.Width() * c.Height() * 3
}

// Channel implements Carrier.
func (c *ImageCarrier) Channel() BitChannel {
	return &lsbChannel{
		buf: c.img.Pix,
		offset: func(slot int) int {
			return (slot/3)*4 + slot%3
		},
		total: c.CapacityBits(),
	}
}

// Bytes implements Carrier. BMP carriers are written as BMP, all others as
// PNG.
func (c *ImageCarrier) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	switch OutputFormat(c.format) {
	case FormatBMP:
		err = bmp.Encode(buf, c.img)
	default:
		err = png.Encode(buf, c.img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone implements Carrier.
func (c *ImageCarrier) Clone() Carrier {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return &ImageCarrier{img: img, format: c.format}
}
