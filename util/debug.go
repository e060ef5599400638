package util
import (
	"log"
)

// switched on by the `debug` configuration key.
var DebugMode = false

func DebugPrintln( args ...any ) {
	if DebugMode == true {
		log.Println( args... )
	}
}

func DebugPrintf( format string, args ...any ) {
	if DebugMode == true {
		log.Printf( format, args... )
	}
}
