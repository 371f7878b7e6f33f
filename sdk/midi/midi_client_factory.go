package midi

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/midipedals/internal/midi/mididarwin"
	"github.com/leandrodaf/midipedals/internal/midi/midilinux"
	"github.com/leandrodaf/midipedals/internal/midi/midiwindows"
	"github.com/leandrodaf/midipedals/sdk/contracts"
)

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"linux":   midilinux.NewMIDIClient,   // ALSA through rtmidi.
	"darwin":  mididarwin.NewMIDIClient,  // macOS (Darwin) MIDI client initializer.
	"windows": midiwindows.NewMIDIClient, // Windows MIDI client initializer.
}

// NewClient initializes a MIDI client based on the current operating system.
// It supports Linux, macOS (Darwin) and Windows, returning contracts.ErrUnsupportedOS otherwise.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return newClientFor(runtime.GOOS, opts)
}

func newClientFor(goos string, opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[goos]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", contracts.ErrUnsupportedOS, goos)
}
