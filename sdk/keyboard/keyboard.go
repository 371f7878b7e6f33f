package keyboard

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/midipedals/internal/keyboard/uinput"
	"github.com/leandrodaf/midipedals/sdk/contracts"
)

// keyboardInitializers maps OS names to virtual keyboard backends.
var keyboardInitializers = map[string]func(*contracts.ClientOptions) (contracts.VirtualKeyboard, error){
	"linux": uinput.NewVirtualKeyboard,
}

// NewVirtualKeyboard creates the synthetic keyboard for the current operating system.
// Errors wrap contracts.ErrDeviceBuildFailure.
func NewVirtualKeyboard(opts *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	return newKeyboardFor(runtime.GOOS, opts)
}

func newKeyboardFor(goos string, opts *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	if initializer, exists := keyboardInitializers[goos]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %w: %s", contracts.ErrDeviceBuildFailure, contracts.ErrUnsupportedOS, goos)
}
