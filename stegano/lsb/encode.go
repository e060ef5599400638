package lsb
import (
	"fmt"
	"runtime"
	"golang.org/x/sync/errgroup"

	"secretos/stegano/util"
)

var (
	// framed messages at least this long (in bits) are written by several goroutines.
	ParallelThreshold = 1 << 16
	// pixels per chunk of the parallel walk.
	ChunkPixels = 1 << 14
)

/*
 * Encode embeds message into the LSBs of the color channels of a copy of buf.
 * buf itself is never modified. If the framed message does not fit,
 * ErrCapacityExceeded is returned and nothing is written.
 */
func Encode( buf *PixelBuffer, message string ) (*PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	result := buf.Clone()
	if err := EncodeInPlace( result, message ); err != nil {
		return nil, err
	}
	return result, nil
}

// the same as Encode, but buf is modified directly.
func EncodeInPlace( buf *PixelBuffer, message string ) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	encoded, err := util.Frame( message )
	if err != nil {
		return err
	}
	if len(encoded) > buf.Capacity() {
		return fmt.Errorf("%w: %d bits required, %d available",
			ErrCapacityExceeded, len(encoded), buf.Capacity())
	}
	if len(encoded) >= ParallelThreshold {
		return embedParallel( buf, encoded )
	}
	embed( buf.Pix, buf.Channels, encoded )
	return nil
}

// replaces the LSB of R, G and B of every pixel in pix until bits are over.
func embed( pix []byte, channels int, bits []byte ) {
	bitIndex := 0
	for i := 0; i < len(pix) && bitIndex < len(bits); i += channels {
		for j := 0; j < ColorChannels && bitIndex < len(bits); j++ {
			pix[i + j] = (pix[i + j] & 0xfe) | bits[ bitIndex ]
			bitIndex++
		}
	}
}

// chunks start and end on pixel boundaries, so they never share a byte.
func embedParallel( buf *PixelBuffer, bits []byte ) error {
	chunkPixels := ChunkPixels
	if chunkPixels <= 0 {
		chunkPixels = 1
	}
	chunkBits := chunkPixels * ColorChannels
	chunkBytes := chunkPixels * buf.Channels

	var g errgroup.Group
	g.SetLimit( runtime.GOMAXPROCS(0) )
	for start := 0; start < len(bits); start += chunkBits {
		offset := (start / ColorChannels) * buf.Channels
		pix := buf.Pix[ offset : min( offset + chunkBytes, len(buf.Pix) ) ]
		chunk := bits[ start : min( start + chunkBits, len(bits) ) ]
		g.Go(func() error {
			embed( pix, buf.Channels, chunk )
			return nil
		})
	}
	return g.Wait()
}
