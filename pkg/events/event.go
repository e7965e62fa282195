package events

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingField is returned by event constructors when a required
// identifier is empty.
var ErrMissingField = errors.New("missing required event field")

// Event is one bus message addressed to a single user.
type Event interface {
	// Name is the event name consumers dispatch on.
	Name() string

	// RoutingKey is the dotted topic the event is published under.
	RoutingKey() string

	// Headers carries the routing identifiers as flat strings.
	Headers() map[string]string

	// Data is the JSON body shared by every member's copy of the event.
	Data() interface{}

	Timestamp() time.Time
}

type envelope struct {
	Name      string      `json:"name"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Marshal renders the wire body of e.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(envelope{
		Name:      e.Name(),
		Timestamp: e.Timestamp(),
		Data:      e.Data(),
	})
}
