package local
import (
	"io"
	"fmt"
	"errors"
	"net/http"
	"encoding/json"

	"secretos/util"
	"secretos/config"
	"secretos/stegano/img"
	"secretos/stegano/lsb"
)

const (
	ImageField = "image"
	MessageField = "message"
	FormatField = "format"

	maxFormMemory = 8 << 20
)

func writeJsonResponse( w http.ResponseWriter, status int, v any, logger *util.Logger ) {
	resp, err := json.Marshal( v )
	if err != nil {
		http.Error( w, "Internal Server Error", http.StatusInternalServerError )
		logger.LogError( fmt.Errorf("Failed to marshal response: %w", err) )
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader( status )
	w.Write( resp )
}

func writeError( w http.ResponseWriter, err error, logger *util.Logger ) {
	status := statusFromError( err )
	if status >= http.StatusInternalServerError {
		logger.LogError( err )
	} else {
		logger.LogWarning( err.Error() )
	}
	writeJsonResponse( w, status, Response{
		Ok: false,
		Message: err.Error(),
	}, logger )
}

func statusFromError( err error ) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As( err, &tooLarge ):
		return http.StatusRequestEntityTooLarge
	case errors.Is( err, img.ErrUnsupportedFormat ), errors.Is( err, img.ErrLossyFormat ):
		return http.StatusUnsupportedMediaType
	case errors.Is( err, lsb.ErrCapacityExceeded ), errors.Is( err, lsb.ErrInvalidCharacter ):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// reads the uploaded image from the multipart form.
func readImage( w http.ResponseWriter, r *http.Request, maxSize int64 ) ([]byte, error) {
	if r.ContentLength > maxSize {
		return nil, &http.MaxBytesError{ Limit: maxSize }
	}
	r.Body = http.MaxBytesReader( w, r.Body, maxSize )
	if err := r.ParseMultipartForm( maxFormMemory ); err != nil {
		return nil, fmt.Errorf("Failed to parse form: %w", err)
	}
	file, _, err := r.FormFile( ImageField )
	if err != nil {
		return nil, fmt.Errorf("Failed to read %q field: %w", ImageField, err)
	}
	defer file.Close()
	return io.ReadAll( file )
}

func handleEncode( w http.ResponseWriter, r *http.Request,
		conf *config.FullConfig, logger *util.Logger ) {

	decoy, err := readImage( w, r, conf.ServerConfig.MaxUploadSize )
	if err != nil {
		writeError( w, err, logger )
		return
	}
	format := conf.OutputFormat()
	if name := r.FormValue( FormatField ); name != "" {
		if format, err = img.ParseFormat( name ); err != nil {
			writeError( w, err, logger )
			return
		}
	}
	encoded, err := img.Hide( decoy, r.FormValue( MessageField ), format )
	if err != nil {
		writeError( w, err, logger )
		return
	}
	util.DebugPrintf( "[local::handleEncode] %d bytes in, %d bytes of %s out\n", len(decoy), len(encoded), format )
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"encoded-image.%s\"", format.Extension()))
	w.Write( encoded )
}

func handleDecode( w http.ResponseWriter, r *http.Request, maxSize int64, logger *util.Logger ) {
	stego, err := readImage( w, r, maxSize )
	if err != nil {
		writeError( w, err, logger )
		return
	}
	message, err := img.Reveal( stego )
	if errors.Is( err, lsb.ErrTerminatorNotFound ) {
		// not an error of the request: the image simply holds nothing
		writeJsonResponse( w, http.StatusOK, Response{
			Ok: false,
			Message: err.Error(),
			Data: message,
		}, logger )
		return
	}
	if err != nil {
		writeError( w, err, logger )
		return
	}
	writeJsonResponse( w, http.StatusOK, Response{
		Ok: true,
		Data: message,
	}, logger )
}

func handleCapacity( w http.ResponseWriter, r *http.Request, maxSize int64, logger *util.Logger ) {
	decoy, err := readImage( w, r, maxSize )
	if err != nil {
		writeError( w, err, logger )
		return
	}
	info, err := img.Inspect( decoy )
	if err != nil {
		writeError( w, err, logger )
		return
	}
	writeJsonResponse( w, http.StatusOK, CapacityResponse{
		Width: info.Width,
		Height: info.Height,
		Format: info.Format.String(),
		CapacityBits: info.CapacityBits,
		MaxMessageLength: info.MaxMessageLength,
	}, logger )
}

func sendFormats( w http.ResponseWriter, logger *util.Logger ) {
	resp := FormatsResponse{}
	for _, f := range img.InputFormats() {
		resp.Input = append( resp.Input, f.String() )
	}
	for _, f := range img.OutputFormats() {
		resp.Output = append( resp.Output, f.String() )
	}
	writeJsonResponse( w, http.StatusOK, resp, logger )
}
