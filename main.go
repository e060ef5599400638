package main
import (
	"os"
	"fmt"
	"flag"
	"errors"
	"path/filepath"

	"secretos/util"
	"secretos/config"
	"secretos/local"
	"secretos/stegano/img"
	"secretos/stegano/lsb"
)

const (
	SecretosFolder = ".secretos"
	ConfigFilename = "config.yaml"
)

func main() {

	if len( os.Args ) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	command := os.Args[1]
	flags := flag.NewFlagSet( command, flag.ExitOnError )
	configFile := flags.String( "c", defaultConfigFile(), "configuration file" )
	input := flags.String( "i", "", "input image" )
	output := flags.String( "o", "", "output file" )
	message := flags.String( "m", "", "message to hide (read from the terminal or stdin if empty)" )
	format := flags.String( "f", "", "output image format: png, bmp, tiff or qoi" )
	flags.Parse( os.Args[2:] )

	if command == "genconf" {
		if err := genConfig( *output, *configFile ); err != nil {
			fatal( "Failed to save default configuration:", err )
		}
		return
	}

	conf, err := loadConfig( *configFile )
	if err != nil {
		fatal( "Failed to load configuration:", err )
	}
	util.DebugMode = conf.Debug

	switch command {
	case "encode":
		messageSet := false
		flags.Visit( func( f *flag.Flag ) {
			if f.Name == "m" {
				messageSet = true
			}
		})
		if !messageSet {
			*message, err = util.ReadMessage( "Message: " )
			if err != nil {
				fatal( "Failed to read message:", err )
			}
		}
		if err = encode( conf, *input, *output, *message, *format ); err != nil {
			fatal( "Failed to hide message:", err )
		}
	case "decode":
		if err = decode( *input, *output ); err != nil {
			fatal( "Failed to reveal message:", err )
		}
	case "capacity":
		if err = capacity( *input ); err != nil {
			fatal( "Failed to inspect image:", err )
		}
	case "serve":
		if err = local.RunLocalServer( conf ); err != nil {
			fatal( "Failed to run local server:", err )
		}
	default:
		help()
	}
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFilename
	}
	return filepath.Join( home, SecretosFolder, ConfigFilename )
}

// a missing configuration file means defaults.
func loadConfig( filename string ) (*config.FullConfig, error) {
	conf, err := config.LoadConfig( filename )
	if errors.Is( err, os.ErrNotExist ) {
		return config.DefaultConfig( filepath.Dir( filename ) ), nil
	}
	return conf, err
}

func genConfig( output, configFile string ) error {
	if output == "" {
		output = configFile
	}
	if err := os.MkdirAll( filepath.Dir( output ), 0700 ); err != nil {
		return err
	}
	if err := config.SaveConfig( output, config.DefaultConfig( filepath.Dir( output ) ) ); err != nil {
		return err
	}
	fmt.Println( "[+] Default configuration written to", output )
	return nil
}

func encode( conf *config.FullConfig, input, output, message, formatName string ) error {
	var err error
	if input == "" {
		// no decoy given: take any from the decoy folder
		input, err = util.PickDecoy( conf.StegConfig.Folder, conf.StegConfig.Extensions )
		if err != nil {
			return err
		}
		util.DebugPrintln( "Picked decoy", input )
	}
	format := conf.OutputFormat()
	if formatName != "" {
		if format, err = img.ParseFormat( formatName ); err != nil {
			return err
		}
	}
	if output == "" {
		output = filepath.Join(
			conf.StegConfig.OutputFolder,
			util.GenFilename( util.PrepareFilename( input ) + "-", format.Extension() ),
		)
	}

	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	encoded, err := img.Hide( decoy, message, format )
	if err != nil {
		return err
	}
	if err = os.WriteFile( output, encoded, 0600 ); err != nil {
		return err
	}
	fmt.Println( "[+] Message hidden in", output )
	return nil
}

func decode( input, output string ) error {
	if input == "" {
		return fmt.Errorf("no input image, use -i")
	}
	stego, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	message, err := img.Reveal( stego )
	if errors.Is( err, lsb.ErrTerminatorNotFound ) {
		fmt.Fprintln( os.Stderr, util.YellowColor + "[WARNING]" + util.ResetColor,
			"no end marker found, the text below is probably garbage" )
		fmt.Println( message )
		return err
	}
	if err != nil {
		return err
	}
	if output != "" {
		return os.WriteFile( output, []byte(message), 0600 )
	}
	fmt.Println( message )
	return nil
}

func capacity( input string ) error {
	if input == "" {
		return fmt.Errorf("no input image, use -i")
	}
	data, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	info, err := img.Inspect( data )
	if err != nil {
		return err
	}
	fmt.Printf( "%s %dx%d: %d bits, up to %d characters\n",
		info.Format, info.Width, info.Height, info.CapacityBits, info.MaxMessageLength )
	return nil
}

func fatal( args ...any ) {
	fmt.Fprintln( os.Stderr, args... )
	os.Exit(1)
}

func help() {
	line := `Usage: ./secretos <command> [flags]

The following commands are supported:
	encode		hide a message: -i decoy [-o output] [-m message] [-f format]
	decode		reveal a message: -i image [-o output]
	capacity	print how many characters an image can hold: -i image
	serve		run the local API server
	genconf		write the default configuration [-o path]

Every command accepts -c <config file>.
`

	fmt.Printf("%s", line)
}
