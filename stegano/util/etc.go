package util
import (
	"golang.org/x/text/unicode/norm"
)

// composes decomposed letters, so "e" + U+0301 becomes a single Latin-1 rune.
func FixUnicode( in string ) string {
	return norm.NFC.String( in )
}

// true if the tail of data spells the terminator.
func HasTerminator( data []byte ) bool {
	n := len(Terminator)
	if len(data) < n {
		return false
	}
	return string( data[ len(data) - n: ] ) == Terminator
}
