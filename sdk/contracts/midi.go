package contracts

// MessageHandler receives every raw MIDI message delivered on a connection.
// The timestamp is expressed in microseconds since the connection was opened.
type MessageHandler func(timestamp uint64, message []byte)

// Connection is a live subscription to the event stream of a MIDI port.
// Messages are delivered to the handler until Close is called.
type Connection interface {
	Close() error
}

// ClientMIDI defines an interface for MIDI input operations.
type ClientMIDI interface {
	ListPorts() ([]PortInfo, error)                                // Lists all available MIDI input ports.
	PortName(index int) (string, error)                            // Resolves the display name of a port.
	Connect(index int, handler MessageHandler) (Connection, error) // Subscribes handler to a port.
	Close() error                                                  // Releases the client.
}
