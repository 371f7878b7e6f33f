//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midipedals/internal/midi/midiclock"
	"github.com/leandrodaf/midipedals/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// ErrCreateInputPort is returned when CoreMIDI refuses to create an input port.
var ErrCreateInputPort = errors.New("error creating input port")

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI input on Darwin (macOS) systems.
type ClientMid struct {
	logger contracts.Logger
	client coremidi.Client // CoreMIDI client instance for MIDI operations.
}

// connection ties a CoreMIDI input port to a single source.
type connection struct {
	logger   contracts.Logger
	portConn internalPortConnection
	wg       sync.WaitGroup // In-flight handler invocations.
	mu       sync.Mutex
	closed   bool
	stopOnce sync.Once
}

// NewMIDIClient registers a CoreMIDI client under the configured name.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("clientName", options.ClientName))

	return &ClientMid{
		logger: options.Logger,
		client: client,
	}, nil
}

// ListPorts retrieves the available MIDI sources.
func (m *ClientMid) ListPorts() ([]contracts.PortInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn("No MIDI sources found")
	}

	ports := make([]contracts.PortInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		ports[i] = contracts.PortInfo{
			Index:        i,
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return ports, nil
}

// PortName resolves the display name of the source at index.
func (m *ClientMid) PortName(index int) (string, error) {
	source, err := m.source(index)
	if err != nil {
		return "", err
	}
	name := source.Name()
	if name == "" {
		return "", fmt.Errorf("%w: source %d", contracts.ErrPortNameUnavailable, index)
	}
	return name, nil
}

// Connect creates an input port and connects it to the source at index.
func (m *ClientMid) Connect(index int, handler contracts.MessageHandler) (contracts.Connection, error) {
	source, err := m.source(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrConnectionFailure, err)
	}

	conn := &connection{logger: m.logger}
	start := time.Now()

	inputPort, err := coremidi.NewInputPort(m.client, "Input Port", func(_ coremidi.Source, packet coremidi.Packet) {
		if !conn.enter() {
			return
		}
		defer conn.wg.Done()
		handler(midiclock.Since(start), packet.Data)
	})
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return nil, fmt.Errorf("%w: %v: %v", contracts.ErrConnectionFailure, ErrCreateInputPort, err)
	}

	conn.portConn, err = inputPort.Connect(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrConnectionFailure, err)
	}

	m.logger.Info("MIDI device successfully connected",
		m.logger.Field().Int("port", index),
		m.logger.Field().String("portName", source.Name()))
	return conn, nil
}

// Close is a no-op; CoreMIDI releases the client with the process.
func (m *ClientMid) Close() error {
	return nil
}

func (m *ClientMid) source(index int) (coremidi.Source, error) {
	var none coremidi.Source
	sources, err := coremidi.AllSources()
	if err != nil {
		return none, fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if index < 0 || index >= len(sources) {
		return none, fmt.Errorf("%w: source %d does not exist", contracts.ErrPortNameUnavailable, index)
	}
	return sources[index], nil
}

func (c *connection) enter() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.wg.Add(1)
	return true
}

// Close disconnects the source and waits for in-flight handlers.
// This function ensures it only executes once, even if called multiple times.
func (c *connection) Close() error {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		if c.portConn != nil {
			c.portConn.Disconnect()
		}
		c.wg.Wait()
		c.logger.Info("MIDI source disconnected")
	})
	return nil
}
