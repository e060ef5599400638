package img
import (
	"io"
	"fmt"
	"bytes"
	"image"
	"image/gif"
	"image/png"
	"image/jpeg"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
	"github.com/xfmoulet/qoi"

	"secretos/stegano/lsb"
)

type codec struct {
	decode	func( io.Reader ) (image.Image, error)
	// nil for formats which can't keep the LSBs intact
	encode	func( io.Writer, image.Image ) error
}

var codecs = map[Format]codec{
	PNG: { png.Decode, png.Encode },
	BMP: { bmp.Decode, bmp.Encode },
	QOI: { qoi.Decode, qoi.Encode },
	TIFF: {
		tiff.Decode,
		func( w io.Writer, m image.Image ) error {
			return tiff.Encode( w, m, &tiff.Options{ Compression: tiff.Deflate } )
		},
	},
	// gif is paletted, the rest are lossy: input only.
	GIF: { gif.Decode, nil },
	JPEG: { jpeg.Decode, nil },
	WebP: { webp.Decode, nil },
}

// all the formats an image can be read from.
func InputFormats() []Format {
	return []Format{ PNG, BMP, TIFF, QOI, GIF, JPEG, WebP }
}

func OutputFormats() []Format {
	result := []Format{}
	for _, f := range InputFormats() {
		if f.Lossless() {
			result = append( result, f )
		}
	}
	return result
}

func Load( data []byte ) (*lsb.PixelBuffer, Format, error) {
	format, err := DetectFormat( data )
	if err != nil {
		return nil, Unknown, err
	}
	img, err := codecs[ format ].decode( bytes.NewReader( data ) )
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	buf, err := ToPixelBuffer( img )
	if err != nil {
		return nil, format, err
	}
	return buf, format, nil
}

func Save( buf *lsb.PixelBuffer, format Format ) ([]byte, error) {
	c, ok := codecs[ format ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if c.encode == nil {
		return nil, fmt.Errorf("%w: %s", ErrLossyFormat, format)
	}
	img, err := FromPixelBuffer( buf )
	if err != nil {
		return nil, err
	}
	out := new(bytes.Buffer)
	if err = c.encode( out, img ); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	return out.Bytes(), nil
}
