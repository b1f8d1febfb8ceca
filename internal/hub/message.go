// Package hub provides a thread-safe websocket broadcast hub using a
// channel-based fan-out.
package hub

// #region message

// MessageType indicates the websocket message format.
type MessageType int

const (
	// TextMessage is a raw text frame (light commands are sent as "ON"/"OFF").
	TextMessage MessageType = iota
	// JSONMessage is a JSON-encoded text frame.
	JSONMessage
)

// Message represents a message to be broadcast to clients.
type Message struct {
	Type MessageType
	Data []byte
}

// NewTextMessage creates a raw text message.
func NewTextMessage(data string) Message {
	return Message{Type: TextMessage, Data: []byte(data)}
}

// NewJSONMessage creates a JSON message from pre-encoded bytes.
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// #endregion message
