package img
import (
	"fmt"
	"bytes"
	"errors"
	"strings"

	"secretos/stegano/lsb"
	"secretos/stegano/util"
)

type Format string

const (
	Unknown = Format("")
	PNG = Format("png")
	GIF = Format("gif")
	JPEG = Format("jpeg")
	BMP = Format("bmp")
	TIFF = Format("tiff")
	WebP = Format("webp")
	QOI = Format("qoi")

	DefaultFormat = PNG
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrLossyFormat = errors.New("format would destroy the hidden bits")
)

/*
 * Image facts reported before hiding anything.
 */
type Info struct {
	Width			int
	Height			int
	Format			Format
	CapacityBits		int
	MaxMessageLength	int
}

func DetectFormat( data []byte ) (Format, error) {
	switch {
	case bytes.HasPrefix( data, []byte("\x89PNG\r\n\x1a\n") ):
		return PNG, nil
	case bytes.HasPrefix( data, []byte("GIF8") ):
		return GIF, nil
	case bytes.HasPrefix( data, []byte{0xff, 0xd8, 0xff} ):
		return JPEG, nil
	case bytes.HasPrefix( data, []byte("BM") ):
		return BMP, nil
	case bytes.HasPrefix( data, []byte("II*\x00") ), bytes.HasPrefix( data, []byte("MM\x00*") ):
		return TIFF, nil
	case len(data) >= 12 && bytes.HasPrefix( data, []byte("RIFF") ) && string(data[8:12]) == "WEBP":
		return WebP, nil
	case bytes.HasPrefix( data, []byte("qoif") ):
		return QOI, nil
	}
	return Unknown, ErrUnsupportedFormat
}

func ParseFormat( name string ) (Format, error) {
	name = strings.TrimPrefix( strings.ToLower( strings.TrimSpace( name ) ), "." )
	switch name {
	case "":
		return DefaultFormat, nil
	case "jpg":
		return JPEG, nil
	case "tif":
		return TIFF, nil
	}
	f := Format(name)
	if _, ok := codecs[f]; !ok {
		return Unknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return f, nil
}

func(f Format) String() string {
	return string(f)
}

func(f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

func(f Format) ContentType() string {
	return "image/" + string(f)
}

// true if the format can carry an embedded message.
func(f Format) Lossless() bool {
	c, ok := codecs[f]
	return ok && c.encode != nil
}

/*
 * Hide embeds message into the decoy image and returns the image
 * re-encoded in the out format.
 */
func Hide( decoy []byte, message string, out Format ) ([]byte, error) {
	if out == Unknown {
		out = DefaultFormat
	}
	if !out.Lossless() {
		return nil, fmt.Errorf("%w: %s", ErrLossyFormat, out)
	}
	buf, _, err := Load( decoy )
	if err != nil {
		return nil, err
	}
	if err = lsb.EncodeInPlace( buf, util.FixUnicode( message ) ); err != nil {
		return nil, err
	}
	return Save( buf, out )
}

// on lsb.ErrTerminatorNotFound the partial text is returned too.
func Reveal( stego []byte ) (string, error) {
	buf, _, err := Load( stego )
	if err != nil {
		return "", err
	}
	return lsb.Decode( buf )
}

func Inspect( decoy []byte ) (*Info, error) {
	buf, format, err := Load( decoy )
	if err != nil {
		return nil, err
	}
	return &Info{
		Width: buf.Width,
		Height: buf.Height,
		Format: format,
		CapacityBits: buf.Capacity(),
		MaxMessageLength: buf.MaxMessageLength(),
	}, nil
}

// the longest message in characters the decoy can hold.
func Capacity( decoy []byte ) (int, error) {
	info, err := Inspect( decoy )
	if err != nil {
		return 0, err
	}
	return info.MaxMessageLength, nil
}
