package img
import (
	"fmt"
	"image"
	"image/draw"

	"secretos/stegano/lsb"
)

const (
	nrgbaChannels = 4
)

/*
 * Every decoded image is turned into non-premultiplied RGBA, the same layout
 * a canvas hands out. Premultiplied color would round away the LSBs of
 * translucent pixels.
 */
func ToPixelBuffer( img image.Image ) (*lsb.PixelBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty image", lsb.ErrMalformedBuffer)
	}

	nrgba := image.NewNRGBA( image.Rect( 0, 0, width, height ) )
	if src, ok := img.(*image.NRGBA); ok {
		// copied row by row, draw would go through premultiplied color
		for y := 0; y < height; y++ {
			row := src.PixOffset( bounds.Min.X, bounds.Min.Y + y )
			copy( nrgba.Pix[ y * nrgba.Stride: (y + 1) * nrgba.Stride ], src.Pix[ row: row + width * nrgbaChannels ] )
		}
	} else {
		draw.Draw( nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src )
	}

	return &lsb.PixelBuffer{
		Width: width,
		Height: height,
		Channels: nrgbaChannels,
		Pix: nrgba.Pix,
	}, nil
}

// 3-channel buffers get an opaque alpha channel.
func FromPixelBuffer( buf *lsb.PixelBuffer ) (*image.NRGBA, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	nrgba := image.NewNRGBA( image.Rect( 0, 0, buf.Width, buf.Height ) )
	if buf.Channels == nrgbaChannels {
		copy( nrgba.Pix, buf.Pix )
		return nrgba, nil
	}
	for p := 0; p < buf.Pixels(); p++ {
		src := buf.Pix[ p * buf.Channels: ]
		dst := nrgba.Pix[ p * nrgbaChannels: ]
		copy( dst[:lsb.ColorChannels], src[:lsb.ColorChannels] )
		if buf.Channels > lsb.ColorChannels {
			dst[3] = src[3]
		} else {
			dst[3] = 0xff
		}
	}
	return nrgba, nil
}
