package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response - полностью прочитанный ответ API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK сообщает, что код ответа в диапазоне 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Decode разбирает JSON-тело ответа в v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return ErrEmptyResponseBody
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%s: %w", ErrorDecodeResponse, err)
	}
	return nil
}
