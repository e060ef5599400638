package lsb
import (
	"errors"
	"secretos/stegano/util"
)

var (
	ErrInvalidCharacter = util.ErrInvalidCharacter
	ErrCapacityExceeded = errors.New("message does not fit into the image")
	ErrTerminatorNotFound = errors.New("no hidden message found")
	ErrMalformedBuffer = errors.New("malformed pixel buffer")
)
