package lsb
import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"math/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretos/stegano/util"
)

func filledBuffer( width, height, channels int, value byte ) *PixelBuffer {
	pb := NewPixelBuffer( width, height, channels )
	for i := range pb.Pix {
		pb.Pix[i] = value
	}
	return pb
}

func noisyBuffer( width, height, channels int, seed int64 ) *PixelBuffer {
	pb := NewPixelBuffer( width, height, channels )
	rand.New( rand.NewSource( seed ) ).Read( pb.Pix )
	return pb
}

func TestRoundTrip( t *testing.T ) {
	tests := []string{
		"",
		"Hi",
		"Hello world!",
		"Ça va? ¿Qué tal? ÿ",
		"\x00\x01 control \x7f",
		strings.Repeat( "a", 4096 ),
	}
	buffers := []*PixelBuffer{
		filledBuffer( 200, 100, 4, 200 ),
		filledBuffer( 200, 100, 3, 0 ),
		noisyBuffer( 150, 120, 4, 1 ),
		noisyBuffer( 64, 300, 3, 2 ),
	}
	for _, buf := range buffers {
		for _, message := range tests {
			enc, err := Encode( buf, message )
			if err != nil {
				t.Errorf("Failed to encode data: %v", err)
				continue
			}
			dec, err := Decode( enc )
			if err != nil {
				t.Errorf("Failed to extract data: %v", err)
			} else if dec != message {
				t.Errorf("Steganography spoiled the data. %q != %q", dec, message)
			}
		}
	}
}

func TestEncodeDoesNotModifyInput( t *testing.T ) {
	buf := noisyBuffer( 20, 20, 4, 3 )
	orig := append( []byte{}, buf.Pix... )
	enc, err := Encode( buf, "secret" )
	require.NoError( t, err )
	assert.Equal( t, orig, buf.Pix )
	assert.NotEqual( t, orig, enc.Pix )
	assert.Equal( t, buf.Width, enc.Width )
	assert.Equal( t, buf.Height, enc.Height )
	assert.Equal( t, buf.Channels, enc.Channels )
}

func TestEncodeInPlace( t *testing.T ) {
	buf := noisyBuffer( 20, 20, 4, 4 )
	expected, err := Encode( buf, "in place" )
	require.NoError( t, err )
	require.NoError( t, EncodeInPlace( buf, "in place" ) )
	assert.Equal( t, expected.Pix, buf.Pix )
}

func TestNonInterference( t *testing.T ) {
	buf := noisyBuffer( 40, 30, 4, 5 )
	message := "only the low bits change"
	enc, err := Encode( buf, message )
	require.NoError( t, err )

	used := util.FramedLength( message )
	for p := 0; p < buf.Pixels(); p++ {
		for c := 0; c < buf.Channels; c++ {
			i := p * buf.Channels + c
			before, after := buf.Pix[i], enc.Pix[i]
			if c >= ColorChannels {
				if before != after {
					t.Fatalf("alpha of pixel %d changed: %d -> %d", p, before, after)
				}
				continue
			}
			if before & 0xfe != after & 0xfe {
				t.Fatalf("upper bits of pixel %d channel %d changed: %08b -> %08b", p, c, before, after)
			}
			if p * ColorChannels + c >= used && before != after {
				t.Fatalf("channel past the message changed at pixel %d", p)
			}
		}
	}
}

func TestBitLayout( t *testing.T ) {
	// "Hi|END|" needs 56 bits, 19 RGB pixels hold 57.
	buf := filledBuffer( 19, 1, 3, 200 )
	enc, err := Encode( buf, "Hi" )
	require.NoError( t, err )

	bits, _ := util.Frame( "Hi" )
	for i, bit := range bits {
		assert.Equal( t, bit, enc.Pix[i] & 1, "bit %d", i )
		assert.Equal( t, byte(0x64), enc.Pix[i] >> 1, "upper bits of channel %d", i )
	}
	// the last channel is untouched
	assert.Equal( t, byte(200), enc.Pix[ len(enc.Pix) - 1 ] )

	dec, err := Decode( enc )
	require.NoError( t, err )
	assert.Equal( t, "Hi", dec )

	// a 4x1 image cannot hold it at all
	_, err = Encode( filledBuffer( 4, 1, 3, 200 ), "Hi" )
	assert.ErrorIs( t, err, ErrCapacityExceeded )
}

func TestCapacityBoundary( t *testing.T ) {
	// 15 framed chars are 120 bits, exactly 40 pixels.
	message := strings.Repeat( "x", 10 )
	pixels := util.FramedLength( message ) / ColorChannels
	require.Equal( t, util.FramedLength( message ), pixels * ColorChannels )

	exact := noisyBuffer( pixels, 1, 4, 6 )
	assert.Equal( t, len(message), exact.MaxMessageLength() )
	enc, err := Encode( exact, message )
	require.NoError( t, err )
	dec, err := Decode( enc )
	require.NoError( t, err )
	assert.Equal( t, message, dec )

	// one character more is 8 bits over capacity
	over := message + "x"
	before := append( []byte{}, exact.Pix... )
	err = EncodeInPlace( exact, over )
	assert.ErrorIs( t, err, ErrCapacityExceeded )
	assert.Equal( t, before, exact.Pix, "buffer must be left untouched on overflow" )
}

func TestOneBitOver( t *testing.T ) {
	// an empty message still needs 40 bits: 13 pixels hold 39, 14 hold 42.
	buf := filledBuffer( 13, 1, 3, 1 )
	assert.Equal( t, util.FramedLength( "" ) - 1, buf.Capacity() )
	_, err := Encode( buf, "" )
	assert.ErrorIs( t, err, ErrCapacityExceeded )

	buf = filledBuffer( 14, 1, 3, 1 )
	enc, err := Encode( buf, "" )
	require.NoError( t, err )
	dec, err := Decode( enc )
	require.NoError( t, err )
	assert.Equal( t, "", dec )
}

func TestEmptyMessageWritesTerminator( t *testing.T ) {
	buf := filledBuffer( 10, 10, 4, 0 )
	enc, err := Encode( buf, "" )
	require.NoError( t, err )
	assert.NotEqual( t, buf.Pix, enc.Pix )
	dec, err := Decode( enc )
	require.NoError( t, err )
	assert.Equal( t, "", dec )
}

func TestInvalidCharacter( t *testing.T ) {
	buf := filledBuffer( 100, 100, 4, 0 )
	for _, message := range []string{ "price: 5€", "日本", "smile 😀" } {
		_, err := Encode( buf, message )
		assert.ErrorIs( t, err, ErrInvalidCharacter, message )
	}
}

func TestMalformedBuffer( t *testing.T ) {
	tests := []*PixelBuffer{
		nil,
		{ Width: 0, Height: 10, Channels: 4, Pix: []byte{} },
		{ Width: 10, Height: 0, Channels: 4, Pix: []byte{} },
		{ Width: 2, Height: 2, Channels: 2, Pix: make( []byte, 8 ) },
		{ Width: 2, Height: 2, Channels: 4, Pix: make( []byte, 15 ) },
		{ Width: 2, Height: 2, Channels: 3, Pix: make( []byte, 13 ) },
	}
	for i, buf := range tests {
		if _, err := Encode( buf, "x" ); !errors.Is( err, ErrMalformedBuffer ) {
			t.Errorf("[%d] Encode: expected ErrMalformedBuffer, got %v", i, err)
		}
		if _, err := Decode( buf ); !errors.Is( err, ErrMalformedBuffer ) {
			t.Errorf("[%d] Decode: expected ErrMalformedBuffer, got %v", i, err)
		}
	}
}

func TestDecodeForeignBuffer( t *testing.T ) {
	for seed := int64(0); seed < 20; seed++ {
		buf := noisyBuffer( 33, 17, 4, seed )
		dec, err := Decode( buf )
		if err == nil {
			// random data may contain the terminator by chance
			continue
		}
		assert.ErrorIs( t, err, ErrTerminatorNotFound )
		assert.LessOrEqual( t, len([]rune(dec)), buf.Capacity() / util.BitsPerChar )
	}

	// all zero LSBs never contain the terminator
	buf := filledBuffer( 5, 5, 3, 0xfe )
	dec, err := Decode( buf )
	assert.ErrorIs( t, err, ErrTerminatorNotFound )
	assert.Equal( t, strings.Repeat( "\x00", 75 / 8 ), dec )
}

func TestTerminatorInsideMessage( t *testing.T ) {
	buf := filledBuffer( 100, 1, 3, 0 )
	enc, err := Encode( buf, "left" + util.Terminator + "right" )
	require.NoError( t, err )
	dec, err := Decode( enc )
	require.NoError( t, err )
	assert.Equal( t, "left", dec )
}

func TestParallelMatchesSequential( t *testing.T ) {
	threshold, chunk := ParallelThreshold, ChunkPixels
	defer func() {
		ParallelThreshold, ChunkPixels = threshold, chunk
	}()

	buf := noisyBuffer( 97, 61, 4, 8 )
	message := strings.Repeat( "parallel walk ", 50 )

	ParallelThreshold = 1 << 30
	sequential, err := Encode( buf, message )
	require.NoError( t, err )

	ParallelThreshold = 1
	for _, size := range []int{ 1, 7, 100, 1000, 1 << 20 } {
		ChunkPixels = size
		parallel, err := Encode( buf, message )
		require.NoError( t, err )
		if !bytes.Equal( sequential.Pix, parallel.Pix ) {
			t.Errorf("parallel encoding with %d pixels per chunk differs from sequential one", size)
		}
		dec, err := Decode( parallel )
		require.NoError( t, err )
		assert.Equal( t, message, dec )
	}
}

func TestMaxMessageLength( t *testing.T ) {
	assert.Equal( t, 0, filledBuffer( 1, 1, 4, 0 ).MaxMessageLength() )
	assert.Equal( t, 0, filledBuffer( 4, 1, 3, 0 ).MaxMessageLength() )
	assert.Equal( t, 1, filledBuffer( 16, 1, 3, 0 ).MaxMessageLength() )
	assert.Equal( t, 3 * 100 * 100 / 8 - len(util.Terminator), filledBuffer( 100, 100, 4, 0 ).MaxMessageLength() )
}
