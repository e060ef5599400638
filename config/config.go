package config

import (
	"os"
	"fmt"
	"path/filepath"
	"gopkg.in/yaml.v3"

	"secretos/util"
	"secretos/stegano/img"
)

const (
	DefaultAddress = "127.0.0.1:8080"
	DefaultMaxUploadSize = 32 << 20
)

/*
 * Server configuration - configuration of local API server.
 * Besides the API it serves a bunch of static pages: the encode/decode
 * page and whatever else the user puts there.
 */
type ServerConfiguration struct {
	Address		string			`yaml:"address"`
	NotFoundPage	string			`yaml:"not_found_page"`
	Pages		map[string]string	`yaml:"pages"`
	MaxUploadSize	int64			`yaml:"max_upload_size"`	// in bytes, per request
}

/*
 * Configuration for steganography: where decoy images are taken from
 * when no input is given and how the results are written.
 */
type SteganoConfig struct {
	Folder		string			`yaml:"decoy_files_folder"`
	OutputFolder	string			`yaml:"output_folder"`
	OutputFormat	string			`yaml:"output_format"`
	Extensions	[]string		`yaml:"supported_extensions"`
}

type FullConfig struct {
	ServerConfig	ServerConfiguration	`yaml:"local_server_config"`
	StegConfig	SteganoConfig		`yaml:"steganography_config"`
	Logger		util.LoggerInfo		`yaml:"logger_config"`
	Debug		bool			`yaml:"debug"`
}

func DefaultConfig( folder string ) *FullConfig {
	return &FullConfig{
		ServerConfig: ServerConfiguration{
			Address: DefaultAddress,
			NotFoundPage: "www/404.html",
			Pages: defaultPages(),
			MaxUploadSize: DefaultMaxUploadSize,
		},
		StegConfig: SteganoConfig{
			Folder: filepath.Join( folder, "decoys" ),
			OutputFolder: ".",
			OutputFormat: img.DefaultFormat.String(),
			Extensions: []string{ "png", "bmp", "gif", "jpg", "jpeg", "tif", "tiff", "webp", "qoi" },
		},
		Logger: util.LoggerInfo{
			Filename: "",
			IsColored: true,
			SaveTime: true,
			Mode: util.Error | util.Warning,
		},
		Debug: false,
	}
}

func defaultPages() map[string]string {
	return map[string]string{
		"GET /{$}": "www/index.html",
		"GET /styles.css": "www/styles.css",
		"GET /script.js": "www/script.js",
	}
}

func(c *FullConfig) Validate() error {
	if c.ServerConfig.Address == "" {
		return fmt.Errorf("local_server_config.address is empty")
	}
	if c.ServerConfig.MaxUploadSize <= 0 {
		return fmt.Errorf("local_server_config.max_upload_size must be positive, got %d",
			c.ServerConfig.MaxUploadSize)
	}
	format, err := img.ParseFormat( c.StegConfig.OutputFormat )
	if err != nil {
		return fmt.Errorf("steganography_config.output_format: %w", err)
	}
	if !format.Lossless() {
		return fmt.Errorf("steganography_config.output_format: %w: %s", img.ErrLossyFormat, format)
	}
	return nil
}

func(c *FullConfig) OutputFormat() img.Format {
	format, err := img.ParseFormat( c.StegConfig.OutputFormat )
	if err != nil {
		return img.DefaultFormat
	}
	return format
}

/*
 * Functions for loading and saving configuration in YAML format.
 * Keys missing from the file keep their default values.
 */
func LoadConfig( filename string ) (*FullConfig, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}

	conf := DefaultConfig( filepath.Dir( filename ) )
	// yaml merges into existing maps, pages must come from one place only
	conf.ServerConfig.Pages = nil
	if err := yaml.Unmarshal( data, conf ); err != nil {
		return nil, err
	}
	if conf.ServerConfig.Pages == nil {
		conf.ServerConfig.Pages = defaultPages()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func SaveConfig( filename string, c *FullConfig ) error {
	data, err := yaml.Marshal( *c )
	if err != nil {
		return err
	}
	return os.WriteFile( filename, data, 0600 )
}
