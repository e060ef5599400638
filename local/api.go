package local
import (
	"os"
	"strings"
	"net/http"

	"secretos/util"
	"secretos/config"
)

func NewApiHandler( conf *config.FullConfig, logger *util.Logger ) http.Handler {
	mux := http.NewServeMux()
	sc := &conf.ServerConfig

	// general user-related pages
	for uri, page := range sc.Pages {
		mux.HandleFunc( uri, func(w http.ResponseWriter, r *http.Request) {
			sendFile( page, sc.NotFoundPage, w )
		})
	}

	// hide a message inside the uploaded image
	mux.HandleFunc("POST /api/encode", func(w http.ResponseWriter, r *http.Request) {
		handleEncode( w, r, conf, logger )
	})

	// reveal a message from the uploaded image
	mux.HandleFunc("POST /api/decode", func(w http.ResponseWriter, r *http.Request) {
		handleDecode( w, r, sc.MaxUploadSize, logger )
	})

	// how much text the uploaded image can carry
	mux.HandleFunc("POST /api/capacity", func(w http.ResponseWriter, r *http.Request) {
		handleCapacity( w, r, sc.MaxUploadSize, logger )
	})

	mux.HandleFunc("GET /api/formats", func(w http.ResponseWriter, r *http.Request) {
		sendFormats( w, logger )
	})
	return mux
}

func RunApiServer( conf *config.FullConfig, logger *util.Logger ) error {
	handler := NewApiHandler( conf, logger )
	logger.LogInfo( "Listening and serving at address " + conf.ServerConfig.Address )
	util.DebugPrintln( util.CyanColor + "Listening and serving at address " + conf.ServerConfig.Address + util.ResetColor )
	return http.ListenAndServe( conf.ServerConfig.Address, handler )
}

func sendFile( filename, notFoundPage string, w http.ResponseWriter ) {
	htmlPage, err := os.ReadFile( filename )
	if err != nil {
		htmlPage, err = os.ReadFile( notFoundPage )
		if err != nil {
			w.WriteHeader( 404 )
			w.Write( []byte("Not found") )
		} else {
			w.WriteHeader( 404 )
			w.Write( htmlPage )
		}
		return
	}
	switch {
	case strings.HasSuffix( filename, ".css" ):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix( filename, ".js" ):
		w.Header().Set("Content-Type", "text/javascript")
	}
	w.Write( htmlPage )
}
