package util
import (
	"io"
	"os"
	"fmt"
	"strings"
	"golang.org/x/term"
)

// reads a secret from the terminal without echoing it.
func GetSecret( prompt string ) (string, error) {
	fmt.Fprint( os.Stderr, prompt )
	secret, err := term.ReadPassword( int(os.Stdin.Fd()) )
	fmt.Fprintln( os.Stderr )
	return string(secret), err
}

// piped stdin is read as is, a terminal gets a prompt.
func ReadMessage( prompt string ) (string, error) {
	if term.IsTerminal( int(os.Stdin.Fd()) ) {
		return GetSecret( prompt )
	}
	data, err := io.ReadAll( os.Stdin )
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix( string(data), "\n" ), nil
}
