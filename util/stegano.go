package util
import (
	"os"
	"fmt"
	"strings"
	"path/filepath"
)

func PickFileAtRandom( files []string ) (string, []string) {
	idx := RandInt( len(files) )
	file := files[idx]
	files = append( files[:idx], files[idx+1:]... )
	return file, files
}

// lists files of folder with one of the extensions, case-insensitive.
func ReadFiles( folder string, supportedExtensions []string ) ([]string, error) {
	allFiles, err := os.ReadDir( folder )
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, f := range allFiles {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower( f.Name() )
		for _, ext := range supportedExtensions {
			if strings.HasSuffix( name, "." + strings.ToLower( ext ) ) == true {
				result = append( result, filepath.Join( folder, f.Name() ) )
				break
			}
		}
	}
	return result, nil
}

// picks a random decoy image from the folder.
func PickDecoy( folder string, supportedExtensions []string ) (string, error) {
	files, err := ReadFiles( folder, supportedExtensions )
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no decoy images in %s", folder)
	}
	file, _ := PickFileAtRandom( files )
	return file, nil
}

// strips directories and extension, keeps only the base name of the file.
func PrepareFilename( filename string ) string {
	base := filepath.Base( strings.ReplaceAll( filename, "\\", "/" ) )
	return strings.TrimSuffix( base, filepath.Ext( base ) )
}
