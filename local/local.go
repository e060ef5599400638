package local
import (
	"secretos/util"
	"secretos/config"
)

/*
 * package local runs the local API server: the same encode/decode workflow
 * as the command line, but over HTTP for the browser page.
 */
func RunLocalServer( conf *config.FullConfig ) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	util.DebugMode = conf.Debug
	logger := util.NewLogger( &conf.Logger )
	if err := RunApiServer( conf, logger ); err != nil {
		logger.LogError( err )
		return err
	}
	return nil
}
