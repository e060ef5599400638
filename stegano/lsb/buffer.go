package lsb
import (
	"fmt"
	"secretos/stegano/util"
)

const (
	// only the first three channels of a pixel carry bits, the rest (alpha) are never touched.
	ColorChannels = 3
)

/*
 * A flat pixel buffer: Width * Height pixels, Channels bytes per pixel,
 * row-major, channels in R, G, B[, A] order.
 */
type PixelBuffer struct {
	Width		int
	Height		int
	Channels	int
	Pix		[]byte
}

func NewPixelBuffer( width, height, channels int ) *PixelBuffer {
	size := 0
	if width > 0 && height > 0 && channels > 0 {
		size = width * height * channels
	}
	return &PixelBuffer{
		Width: width,
		Height: height,
		Channels: channels,
		Pix: make( []byte, size ),
	}
}

func(pb *PixelBuffer) Validate() error {
	if pb == nil {
		return fmt.Errorf("%w: nil buffer", ErrMalformedBuffer)
	}
	if pb.Width <= 0 || pb.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformedBuffer, pb.Width, pb.Height)
	}
	if pb.Channels < ColorChannels {
		return fmt.Errorf("%w: %d channels per pixel, at least %d required",
			ErrMalformedBuffer, pb.Channels, ColorChannels)
	}
	if len(pb.Pix) != pb.Width * pb.Height * pb.Channels {
		return fmt.Errorf("%w: %d bytes for %dx%dx%d pixels",
			ErrMalformedBuffer, len(pb.Pix), pb.Width, pb.Height, pb.Channels)
	}
	return nil
}

func(pb *PixelBuffer) Pixels() int {
	return pb.Width * pb.Height
}

// capacity in bits.
func(pb *PixelBuffer) Capacity() int {
	return pb.Pixels() * ColorChannels
}

// the longest message (in characters) which fits together with the terminator.
func(pb *PixelBuffer) MaxMessageLength() int {
	n := pb.Capacity() / util.BitsPerChar - len(util.Terminator)
	if n < 0 {
		return 0
	}
	return n
}

func(pb *PixelBuffer) Clone() *PixelBuffer {
	pix := make( []byte, len(pb.Pix) )
	copy( pix, pb.Pix )
	return &PixelBuffer{
		Width: pb.Width,
		Height: pb.Height,
		Channels: pb.Channels,
		Pix: pix,
	}
}
