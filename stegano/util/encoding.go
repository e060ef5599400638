package util
import (
	"fmt"
	"errors"
	"golang.org/x/text/encoding/charmap"
)

const (
	// appended to every message before it is turned into bits.
	// it is not escaped: a message containing it is cut at its first occurrence.
	Terminator = "|END|"
	BitsPerChar = 8
)

var ErrInvalidCharacter = errors.New("character is not representable in one byte")

/*
 * transform data from/to binary form, most significant bit first.
 */
func ToBin( x byte ) []byte {
	result := make( []byte, BitsPerChar )
	for i := 0; i < BitsPerChar; i++ {
		result[ BitsPerChar - i - 1 ] = x & 1
		x >>= 1
	}
	return result
}

func FromBin( x []byte ) byte {
	result := byte(0)
	for i := 0; i < BitsPerChar; i++ {
		result = (result << 1) | (x[i] & 1)
	}
	return result
}

// every rune of text must fit into a single Latin-1 byte.
func TextToBits( text string ) ([]byte, error) {
	res := make( []byte, 0, len(text) * BitsPerChar )
	pos := 0
	for _, r := range text {
		b, ok := charmap.ISO8859_1.EncodeRune( r )
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, r, pos)
		}
		res = append( res, ToBin( b )... )
		pos++
	}
	return res, nil
}

// trailing bits which do not complete a byte are dropped.
func BitsToText( bits []byte ) string {
	result := make( []byte, 0, len(bits) / BitsPerChar )
	for i := 0; i + BitsPerChar <= len(bits); i += BitsPerChar {
		result = append( result, FromBin( bits[i:i+BitsPerChar] ) )
	}
	return BytesToText( result )
}

func BytesToText( data []byte ) string {
	runes := make( []rune, len(data) )
	for i, b := range data {
		runes[i] = charmap.ISO8859_1.DecodeByte( b )
	}
	return string(runes)
}

// message followed by the terminator, as a bit stream.
func Frame( message string ) ([]byte, error) {
	return TextToBits( message + Terminator )
}

func FramedLength( message string ) int {
	count := 0
	for range message {
		count++
	}
	return (count + len(Terminator)) * BitsPerChar
}
