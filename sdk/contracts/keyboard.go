package contracts

// KeyCode is a Linux input event key code.
type KeyCode uint16

const (
	// KeyUp is the arrow-up key (KEY_UP).
	KeyUp KeyCode = 103
	// KeyDown is the arrow-down key (KEY_DOWN).
	KeyDown KeyCode = 108
)

// String returns the input event name of the key code.
func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "KEY_UP"
	case KeyDown:
		return "KEY_DOWN"
	}
	return "KEY_UNKNOWN"
}

// KeyValue is the value carried by a key event.
type KeyValue int32

const (
	KeyReleased KeyValue = 0
	KeyPressed  KeyValue = 1
)

// VirtualKeyboard is a synthetic keyboard device registered with the operating system.
type VirtualKeyboard interface {
	EmitKey(code KeyCode, value KeyValue) error // Writes a single key event.
	Close() error                               // Destroys the device.
}
