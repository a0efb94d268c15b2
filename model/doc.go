// Package model defines the conversion options shared by the dispatcher and
// the conversion engines. Wire messages live in model/message.
package model
