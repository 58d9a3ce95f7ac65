package contipay

import "encoding/json"

// Response is a successful gateway answer.
type Response struct {
	Provider  string          `json:"provider"`
	Reference string          `json:"reference"`
	Body      json.RawMessage `json:"body"`
}

// String returns the gateway body verbatim.
func (r *Response) String() string {
	return string(r.Body)
}

// ErrorEnvelope is the JSON shape returned for processing failures.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Envelope renders a call result as the JSON string callers expect: the
// gateway body on success, {"status":"error","message":...} otherwise.
func Envelope(resp *Response, err error) string {
	if err == nil && resp != nil {
		return resp.String()
	}

	msg := ErrProcessing.Error()
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	data, mErr := json.Marshal(ErrorEnvelope{Status: "error", Message: msg})
	if mErr != nil {
		return `{"status":"error","message":"payment processing failed"}`
	}
	return string(data)
}
