package response

// Response is the envelope every endpoint answers with
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error carries a caller-facing message; internal details stay in the logs.
func Error(statusCode int, message string) Response {
	return Response{
		Status:     StatusError,
		StatusCode: statusCode,
		Error:      message,
	}
}
