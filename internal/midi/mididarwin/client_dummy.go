//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/midipedals/sdk/contracts"
)

type DummyMIDIClient struct {
	logger contracts.Logger
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-macOS system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIClient) ListPorts() ([]contracts.PortInfo, error) {
	m.logger.Warn("ListPorts called on dummy MIDI client")
	return nil, fmt.Errorf("MIDI functionality is not available on this platform")
}

func (m *DummyMIDIClient) PortName(index int) (string, error) {
	m.logger.Warn("PortName called on dummy MIDI client")
	return "", fmt.Errorf("%w: MIDI functionality is not available on this platform", contracts.ErrPortNameUnavailable)
}

func (m *DummyMIDIClient) Connect(index int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.logger.Warn("Connect called on dummy MIDI client")
	return nil, fmt.Errorf("%w: MIDI functionality is not available on this platform", contracts.ErrConnectionFailure)
}

func (m *DummyMIDIClient) Close() error {
	return nil
}
