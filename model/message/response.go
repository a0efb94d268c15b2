package message

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Response is the single terminal outcome of an addFile request: either URL
// (the srtUrl handle) or Err is set.
type Response struct {
	ID  ID
	URL string
	Err error
}

// Success creates a successful response.
func Success(id ID, url string) *Response {
	return &Response{ID: id, URL: url}
}

// Failure creates a failed response carrying err unmodified.
func Failure(id ID, err error) *Response {
	return &Response{ID: id, Err: err}
}

// IsSuccess returns true when the conversion succeeded.
func (r *Response) IsSuccess() bool { return r.Err == nil }

type wireResponse struct {
	ID     ID     `json:"id"`
	SrtURL string  `json:"srtUrl,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (r *Response) MarshalJSON() ([]byte, error) {
	wire := wireResponse{ID: r.ID, SrtURL: r.URL}
	if r.Err != nil {
		wire.SrtURL = ""
		text := r.Err.Error()
		if text == "" {
			// an empty message must still read as a failure
			text = fmt.Sprintf("%T", r.Err)
		}
		wire.Error = &text
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Response) UnmarshalJSON(data []byte) error {
	wire := wireResponse{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.ID = wire.ID
	r.URL = wire.SrtURL
	r.Err = nil
	if wire.Error != nil {
		r.Err = errors.New(*wire.Error)
	}
	return nil
}
