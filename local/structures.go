package local
import (
)

type Response struct {
	Ok		bool		`json:"ok"`		// if no error occured
	Message		string		`json:"message"`	// error message, if any
	Data		string		`json:"data"`		// revealed text; partial if ok is false
}

type CapacityResponse struct {
	Width			int		`json:"width"`
	Height			int		`json:"height"`
	Format			string		`json:"format"`
	CapacityBits		int		`json:"capacity_bits"`
	MaxMessageLength	int		`json:"max_message_length"`
}

type FormatsResponse struct {
	Input		[]string	`json:"input"`	// formats a decoy can be uploaded in
	Output		[]string	`json:"output"`	// formats the result can be saved in
}
