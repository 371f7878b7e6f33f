//go:build linux

package midilinux

import (
	"fmt"
	"sync"

	"github.com/leandrodaf/midipedals/internal/midi/midiclock"
	"github.com/leandrodaf/midipedals/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// ClientMid manages MIDI input on Linux through the rtmidi ALSA backend.
type ClientMid struct {
	logger     contracts.Logger
	clientName string
}

// connection is a listening input port.
type connection struct {
	logger contracts.Logger
	in     drivers.In
	stop   func()
	once   sync.Once
}

// NewMIDIClient creates a MIDI client for Linux.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if drivers.Get() == nil {
		return nil, fmt.Errorf("no MIDI driver registered")
	}
	options.Logger.Info("MIDI client created for Linux",
		options.Logger.Field().String("clientName", options.ClientName))

	return &ClientMid{
		logger:     options.Logger,
		clientName: options.ClientName,
	}, nil
}

// ListPorts lists the available MIDI input ports.
func (m *ClientMid) ListPorts() ([]contracts.PortInfo, error) {
	ins, err := drivers.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to get MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		m.logger.Warn("No MIDI input ports found")
	}

	ports := make([]contracts.PortInfo, len(ins))
	for i, in := range ins {
		ports[i] = contracts.PortInfo{
			Index:      i,
			Name:       in.String(),
			EntityName: in.String(),
		}
	}
	return ports, nil
}

// PortName resolves the display name of the port at index.
func (m *ClientMid) PortName(index int) (string, error) {
	in, err := m.port(index)
	if err != nil {
		return "", err
	}
	name := in.String()
	if name == "" {
		return "", fmt.Errorf("%w: port %d", contracts.ErrPortNameUnavailable, index)
	}
	return name, nil
}

// Connect opens the port at index and delivers every message to handler.
func (m *ClientMid) Connect(index int, handler contracts.MessageHandler) (contracts.Connection, error) {
	in, err := m.port(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrConnectionFailure, err)
	}

	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("%w: open input port: %v", contracts.ErrConnectionFailure, err)
	}

	stop, err := in.Listen(func(msg []byte, milliseconds int32) {
		handler(midiclock.FromMillis(int64(milliseconds)), msg)
	}, drivers.ListenConfig{
		TimeCode:    true,
		ActiveSense: true,
		SysEx:       true,
		OnErr: func(err error) {
			m.logger.Warn("MIDI input error", m.logger.Field().Error("error", err))
		},
	})
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w: start listening: %v", contracts.ErrConnectionFailure, err)
	}

	m.logger.Info("MIDI port connected",
		m.logger.Field().Int("port", index),
		m.logger.Field().String("portName", in.String()))

	return &connection{logger: m.logger, in: in, stop: stop}, nil
}

// Close releases the rtmidi driver.
func (m *ClientMid) Close() error {
	midi.CloseDriver()
	m.logger.Info("MIDI driver closed")
	return nil
}

func (m *ClientMid) port(index int) (drivers.In, error) {
	ins, err := drivers.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to get MIDI inputs: %w", err)
	}
	if index < 0 || index >= len(ins) {
		return nil, fmt.Errorf("%w: port %d does not exist", contracts.ErrPortNameUnavailable, index)
	}
	return ins[index], nil
}

// Close stops delivery and closes the port. Safe to call more than once.
func (c *connection) Close() error {
	var err error
	c.once.Do(func() {
		c.stop()
		err = c.in.Close()
		c.logger.Info("MIDI port disconnected", c.logger.Field().String("portName", c.in.String()))
	})
	return err
}
