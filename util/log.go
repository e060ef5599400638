package util
import (
	"io"
	"os"
	"sync"
	"time"
)

/*
 * a custom logger: leveled, optionally colored, writes either into a file
 * or to stderr.
 */
const (
	Error = 1
	Warning = 2
	Info = 4
	AllLevels = Error | Warning | Info

	RedColor = "\033[31m"
	YellowColor = "\033[33m"
	GreenColor = "\033[32m"
	CyanColor = "\033[36m"
	ResetColor = "\033[0m"
)

type LoggerInfo struct {
	Filename	string		`yaml:"filename"`	// empty means stderr
	IsColored	bool		`yaml:"is_colored"`
	SaveTime	bool		`yaml:"save_time"`
	Mode		uint8		`yaml:"mode"`
}

type Logger struct {
	li		*LoggerInfo
	out		io.Writer
	mtx		sync.Mutex
}

func NewLogger( li *LoggerInfo ) *Logger {
	return &Logger{
		li: li,
	}
}

// logs go to w instead of the configured file.
func NewWriterLogger( li *LoggerInfo, w io.Writer ) *Logger {
	return &Logger{
		li: li,
		out: w,
	}
}

func(l *Logger) colorize( line string, color string ) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func(l *Logger) prepareString( str string, clr string ) string {
	toWrite := l.colorize( str, clr ) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format( time.RFC3339 ) + " "
	}
	return toWrite
}

func(l *Logger) LogString( s string ) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.out != nil {
		io.WriteString( l.out, s + "\n" )
		return
	}
	if l.li.Filename == "" {
		os.Stderr.WriteString( s + "\n" )
		return
	}
	// just append line
	f, err := os.OpenFile( l.li.Filename, os.O_APPEND | os.O_CREATE | os.O_WRONLY, 0600 )
	if err == nil {
		defer f.Close()
		f.WriteString( s + "\n" )
	}
}

func(l *Logger) LogError( err error ) {
	if l.li.Mode & Error == Error {
		toWrite := l.prepareString( "[ERROR]", RedColor ) + err.Error()
		l.LogString( toWrite )
	}
}

func(l *Logger) LogWarning( warning string ) {
	if l.li.Mode & Warning == Warning {
		toWrite := l.prepareString( "[WARNING]", YellowColor ) + warning
		l.LogString( toWrite )
	}
}

func(l *Logger) LogInfo( info string ) {
	if l.li.Mode & Info == Info {
		toWrite := l.prepareString( "[INFO]", CyanColor ) + info
		l.LogString( toWrite )
	}
}
