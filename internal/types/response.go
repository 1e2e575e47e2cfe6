package types

// Response is the envelope every endpoint answers with. Count is only set
// on list responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Ok builds a success envelope.
func Ok(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// OkList builds a success envelope carrying a list and its length.
func OkList(data interface{}, count int) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// Fail builds a failure envelope.
func Fail(errMsg string) Response {
	return Response{Success: false, Error: errMsg}
}
