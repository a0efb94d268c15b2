package message

import (
	"encoding/json"
	"fmt"

	"github.com/viant/srtworker/model"
)

// Action identifies the request variant.
type Action string

const (
	ActionAddFile     Action = "addFile"
	ActionPreloadDict Action = "preloadDict"
)

// Request is an inbound message. Exactly one of AddFile or PreloadDict is set,
// matching Action.
type Request struct {
	ID          ID
	Action      Action
	AddFile     *AddFile
	PreloadDict *PreloadDict
	// Rejected carries the violation of an inbound message that failed to
	// decode. It travels through the queue so that every earlier request is
	// dispatched before the violation stops the dispatcher.
	Rejected error
}

// AddFile asks for one file conversion.
type AddFile struct {
	// File is the storage URL of the source subtitle.
	File string
	// Options take precedence over RawOptions when set.
	Options *model.Options
	// RawOptions is the undecoded opts payload of a wire message.
	RawOptions json.RawMessage
}

// ConversionOptions returns a private copy of the request options, decoding
// RawOptions when needed.
func (a *AddFile) ConversionOptions() (*model.Options, error) {
	if a.Options != nil {
		return a.Options.Clone(), nil
	}
	ret := &model.Options{}
	if len(a.RawOptions) == 0 || string(a.RawOptions) == "null" {
		return ret, nil
	}
	if err := json.Unmarshal(a.RawOptions, ret); err != nil {
		return nil, fmt.Errorf("invalid opts: %w", err)
	}
	return ret, nil
}

// PreloadDict replaces the dictionary cache slot. A nil Dict clears it.
type PreloadDict struct {
	Dict *string
}

// NewAddFile creates an addFile request.
func NewAddFile(id ID, file string, options *model.Options) *Request {
	return &Request{ID: id, Action: ActionAddFile, AddFile: &AddFile{File: file, Options: options}}
}

// NewPreloadDict creates a preloadDict request; an empty dict clears the cache.
func NewPreloadDict(dict string) *Request {
	ret := &Request{Action: ActionPreloadDict, PreloadDict: &PreloadDict{}}
	if dict != "" {
		ret.PreloadDict.Dict = &dict
	}
	return ret
}

// NewRejected wraps a decode failure into a request the dispatcher refuses.
func NewRejected(err error) *Request {
	return &Request{Rejected: err}
}

type wireRequest struct {
	Action Action          `json:"action"`
	ID     ID              `json:"id,omitempty"`
	File   *string         `json:"file,omitempty"`
	Opts   json.RawMessage `json:"opts,omitempty"`
	Dict   *string         `json:"dict,omitempty"`
}

// Decode validates an inbound wire message against the closed request schema.
// Every error it returns wraps ErrProtocol.
func Decode(data []byte) (*Request, error) {
	wire := &wireRequest{}
	if err := json.Unmarshal(data, wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	ret := &Request{ID: wire.ID, Action: wire.Action}
	switch wire.Action {
	case ActionAddFile:
		ret.AddFile = &AddFile{RawOptions: wire.Opts}
		if wire.File != nil {
			ret.AddFile.File = *wire.File
		}
	case ActionPreloadDict:
		ret.PreloadDict = &PreloadDict{}
		if wire.Dict != nil && *wire.Dict != "" {
			ret.PreloadDict.Dict = wire.Dict
		}
	default:
		return nil, fmt.Errorf("%w: %w %q", ErrProtocol, ErrUnknownAction, wire.Action)
	}
	return ret, nil
}

// Validate checks that the payload matches the action. The id is never
// validated; it is echoed back as received.
func (r *Request) Validate() error {
	if r.Rejected != nil {
		return r.Rejected
	}
	switch r.Action {
	case ActionAddFile:
		if r.AddFile == nil {
			return fmt.Errorf("%w: addFile without payload", ErrProtocol)
		}
	case ActionPreloadDict:
		if r.PreloadDict == nil {
			return fmt.Errorf("%w: preloadDict without payload", ErrProtocol)
		}
	default:
		return fmt.Errorf("%w: %w %q", ErrProtocol, ErrUnknownAction, r.Action)
	}
	return nil
}
