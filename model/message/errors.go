package message

import "errors"

var (
	// ErrProtocol is returned for inbound messages that do not match the
	// request schema. It is a caller contract violation and fatal to the dispatcher.
	ErrProtocol = errors.New("protocol violation")

	// ErrUnknownAction is returned for requests carrying an unrecognised action.
	ErrUnknownAction = errors.New("unknown action")
)
