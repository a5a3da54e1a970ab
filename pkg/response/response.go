package response

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response is the JSON envelope every endpoint returns. Data and Error are
// mutually exclusive; the muster-roll export is the one endpoint that
// bypasses the envelope (it streams a file).
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     statusSuccess,
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps a message in an error envelope. The message is the public,
// stable text; upstream detail never travels through here.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     statusError,
		StatusCode: statusCode,
		Error:      err,
	}
}
