//go:build windows
// +build windows

package midiwindows

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/midipedals/internal/midi/midiclock"
	"github.com/leandrodaf/midipedals/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid manages MIDI input on Windows
type ClientMid struct {
	logger contracts.Logger
	mu     sync.Mutex
	conns  map[*connection]struct{} // Keeps callback instances reachable while open.
}

// connection is an opened winmm input device.
type connection struct {
	client  *ClientMid
	logger  contracts.Logger
	handle  HMIDIIN
	handler contracts.MessageHandler
	once    sync.Once
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")

	callbackOnce sync.Once
	callback     uintptr
)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows",
		options.Logger.Field().String("clientName", options.ClientName))

	return &ClientMid{
		logger: options.Logger,
		conns:  make(map[*connection]struct{}),
	}, nil
}

// ListPorts lists the available MIDI input devices. Names that cannot be
// resolved are left empty.
func (m *ClientMid) ListPorts() ([]contracts.PortInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := int(uint32(r0))
	if numDevices == 0 {
		m.logger.Warn("No MIDI devices found")
	}

	ports := make([]contracts.PortInfo, numDevices)
	for i := 0; i < numDevices; i++ {
		ports[i] = contracts.PortInfo{Index: i}
		caps, err := devCaps(i)
		if err != nil {
			m.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		ports[i].Name = deviceName
		ports[i].EntityName = deviceName
		ports[i].Manufacturer = fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid)
	}
	return ports, nil
}

// PortName resolves the display name of the device at index.
func (m *ClientMid) PortName(index int) (string, error) {
	caps, err := devCaps(index)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrPortNameUnavailable, err)
	}
	name := windows.UTF16ToString(caps.szPname[:])
	if name == "" {
		return "", fmt.Errorf("%w: device %d", contracts.ErrPortNameUnavailable, index)
	}
	return name, nil
}

// Connect opens the device at index and starts delivering messages to handler.
func (m *ClientMid) Connect(index int, handler contracts.MessageHandler) (contracts.Connection, error) {
	callbackOnce.Do(func() {
		callback = windows.NewCallback(midiInCallback)
	})

	conn := &connection{client: m, logger: m.logger, handler: handler}
	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&conn.handle)),
		uintptr(index),
		callback,
		uintptr(unsafe.Pointer(conn)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		return nil, fmt.Errorf("%w: open MIDI device %d: %v", contracts.ErrConnectionFailure, index, err)
	}

	m.mu.Lock()
	m.conns[conn] = struct{}{}
	m.mu.Unlock()

	r1, _, err = procMidiInStart.Call(uintptr(conn.handle))
	if r1 != 0 {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: start MIDI capture: %v", contracts.ErrConnectionFailure, err)
	}

	m.logger.Info(fmt.Sprintf("MIDI device %d connected", index))
	return conn, nil
}

// Close stops every connection still open.
func (m *ClientMid) Close() error {
	m.mu.Lock()
	conns := make([]*connection, 0, len(m.conns))
	for c := range m.conns {
		conns = append(conns, c)
	}
	m.mu.Unlock()

	var firstErr error
	for _, c := range conns {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func devCaps(index int) (midiInCaps, error) {
	var caps midiInCaps
	r1, _, _ := procMidiInGetDevCaps.Call(
		uintptr(index),
		uintptr(unsafe.Pointer(&caps)),
		unsafe.Sizeof(caps),
	)
	if r1 != 0 {
		return caps, fmt.Errorf("midiInGetDevCaps(%d) returned %d", index, r1)
	}
	return caps, nil
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	// dwInstance is the *connection passed to midiInOpen; ClientMid.conns keeps it alive until midiInClose.
	c := (*connection)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		c.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		c.logger.Debug("MIDI device closed")
	case MIM_DATA, MIM_MOREDATA:
		msg := unpackShortMessage(uint32(dwParam1))
		// dwParam2 is milliseconds since midiInStart.
		c.handler(midiclock.FromMillis(int64(uint32(dwParam2))), msg)
	case MIM_ERROR, MIM_LONGERROR:
		c.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	default:
		c.logger.Warn(fmt.Sprintf("Unknown MIDI message: 0x%X", wMsg))
	}

	return 0
}

// Close terminates MIDI event capture and closes the device
func (c *connection) Close() error {
	var err error
	c.once.Do(func() {
		if r1, _, e := procMidiInStop.Call(uintptr(c.handle)); r1 != 0 {
			c.logger.Error(fmt.Sprintf("Failed to stop MIDI capture: %v", e))
			err = e
		}
		if r1, _, e := procMidiInClose.Call(uintptr(c.handle)); r1 != 0 {
			c.logger.Error(fmt.Sprintf("Failed to close MIDI device: %v", e))
			if err == nil {
				err = e
			}
		}

		c.client.mu.Lock()
		delete(c.client.conns, c)
		c.client.mu.Unlock()
		c.logger.Info("MIDI capture stopped and device closed")
	})
	return err
}
