//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/midipedals/sdk/contracts"
)

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient initializes a dummy MIDI client for non-Windows systems.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-Windows system")
	return &dummyMIDIClient{
		logger: options.Logger,
	}, nil
}

// ListPorts logs a warning and returns an error indicating that MIDI functionality is unavailable on this platform.
func (m *dummyMIDIClient) ListPorts() ([]contracts.PortInfo, error) {
	m.logger.Warn("ListPorts called on dummy MIDI client")
	return nil, fmt.Errorf("MIDI functionality is not available on this platform")
}

// PortName logs a warning and returns contracts.ErrPortNameUnavailable.
func (m *dummyMIDIClient) PortName(index int) (string, error) {
	m.logger.Warn("PortName called on dummy MIDI client")
	return "", fmt.Errorf("%w: MIDI functionality is not available on this platform", contracts.ErrPortNameUnavailable)
}

// Connect logs a warning and returns contracts.ErrConnectionFailure.
func (m *dummyMIDIClient) Connect(index int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.logger.Warn("Connect called on dummy MIDI client")
	return nil, fmt.Errorf("%w: MIDI functionality is not available on this platform", contracts.ErrConnectionFailure)
}

// Close does nothing on the dummy client.
func (m *dummyMIDIClient) Close() error {
	return nil
}
