package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront-service/models"
)

// Response is what every client operation hands back, unchanged from the
// request utility. Code, Message and Data come from the standard envelope;
// when the body is not an envelope Data holds the whole body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	Code    int
	Message string
	Data    json.RawMessage
}

func newResponse(status int, header http.Header, body []byte) *Response {
	resp := &Response{
		StatusCode: status,
		Header:     header,
		Body:       body,
	}

	var env struct {
		Code    *int            `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &env) == nil && env.Code != nil {
		resp.Code = *env.Code
		resp.Message = env.Message
		resp.Data = env.Data
		return resp
	}

	if len(trimmed) > 0 {
		resp.Data = json.RawMessage(trimmed)
	}
	return resp
}

// DecodeData unmarshals the envelope payload into T.
func DecodeData[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, fmt.Errorf("decode data: nil response")
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}

// DecodeEnvelope returns the full typed envelope of resp.
func DecodeEnvelope[T any](resp *Response) (*models.Envelope[T], error) {
	data, err := DecodeData[T](resp)
	if err != nil {
		return nil, err
	}
	return &models.Envelope[T]{
		Code:    resp.Code,
		Message: resp.Message,
		Data:    data,
	}, nil
}
