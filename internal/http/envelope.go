package http

// SuccessResponse is the envelope wrapping every successful reply.
type SuccessResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// ErrorResponse is the envelope wrapping every failure reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HTTPErrorReason maps a status code to its canonical phrase.
func HTTPErrorReason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 500:
		return "Internal Server Error"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	default:
		return "Unknown Error"
	}
}

// NewSuccess builds the success envelope.
func NewSuccess(code int, data any) SuccessResponse {
	return SuccessResponse{
		Code:   code,
		Status: "success",
		Data:   data,
	}
}

// NewError builds the error envelope. Empty message or detail fall back
// to the canonical reason for the code.
func NewError(code int, message, detail string) ErrorResponse {
	reason := HTTPErrorReason(code)
	if message == "" {
		message = reason
	}
	if detail == "" {
		detail = reason
	}
	return ErrorResponse{
		Code:    code,
		Status:  "error",
		Message: message,
		Error:   detail,
	}
}
