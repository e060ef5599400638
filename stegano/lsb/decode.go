package lsb
import (
	"fmt"
	"secretos/stegano/util"
)

/*
 * Decode reads LSBs of R, G and B channels in the same order Encode writes them
 * and stops at the first terminator. If the whole buffer was read without
 * meeting one, everything collected so far is returned along with
 * ErrTerminatorNotFound.
 */
func Decode( buf *PixelBuffer ) (string, error) {
	if err := buf.Validate(); err != nil {
		return "", err
	}
	decoded := make( []byte, 0, 64 )
	acc := byte(0)
	bits := 0
	for i := 0; i < len(buf.Pix); i += buf.Channels {
		for j := 0; j < ColorChannels; j++ {
			acc = (acc << 1) | (buf.Pix[i + j] & 1)
			bits++
			if bits < util.BitsPerChar {
				continue
			}
			decoded = append( decoded, acc )
			acc, bits = 0, 0
			if util.HasTerminator( decoded ) {
				return util.BytesToText( decoded[ :len(decoded) - len(util.Terminator) ] ), nil
			}
		}
	}
	return util.BytesToText( decoded ), fmt.Errorf("%w: %d bytes read", ErrTerminatorNotFound, len(decoded))
}
