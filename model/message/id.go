package message

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is the caller-assigned correlation token. It holds the raw JSON value
// exactly as received so that responses echo it back in the same form; an
// absent or null id is the zero ID and is echoed as null.
type ID string

// StringID returns an ID for a string token.
func StringID(s string) ID {
	data, _ := json.Marshal(s)
	return ID(data)
}

// IsZero reports whether the id was never set.
func (i ID) IsZero() bool { return i == "" }

// String returns the token text, unquoted for string tokens.
func (i ID) String() string {
	var s string
	if len(i) > 0 && i[0] == '"' && json.Unmarshal([]byte(i), &s) == nil {
		return s
	}
	return string(i)
}

// MarshalJSON implements json.Marshaler
func (i ID) MarshalJSON() ([]byte, error) {
	if i == "" {
		return []byte("null"), nil
	}
	return []byte(i), nil
}

// UnmarshalJSON implements json.Unmarshaler. Any JSON value is accepted and
// kept in compact form.
func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}
	compact := &bytes.Buffer{}
	if err := json.Compact(compact, data); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*i = ID(compact.String())
	return nil
}
