//go:build linux

package uinput

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"
	"github.com/leandrodaf/midipedals/sdk/contracts"
)

// busVirtual is BUS_VIRTUAL from linux/input.h.
const busVirtual = 0x06

// keyCodes lists the keys the virtual device declares.
var keyCodes = map[contracts.KeyCode]evdev.EvCode{
	contracts.KeyDown: evdev.KEY_DOWN,
	contracts.KeyUp:   evdev.KEY_UP,
}

// eventWriter is the part of *evdev.InputDevice the keyboard needs.
type eventWriter interface {
	WriteOne(event *evdev.InputEvent) error
	Close() error
}

// Keyboard is a uinput keyboard exposing KEY_DOWN and KEY_UP.
type Keyboard struct {
	logger contracts.Logger
	name   string
	dev    eventWriter
	once   sync.Once
}

// NewVirtualKeyboard creates the uinput device. Needs write access to /dev/uinput.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	codes := make([]evdev.EvCode, 0, len(keyCodes))
	for _, code := range keyCodes {
		codes = append(codes, code)
	}

	dev, err := evdev.CreateDevice(options.VirtualDeviceName, evdev.InputID{
		BusType: busVirtual,
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: codes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrDeviceBuildFailure, err)
	}

	options.Logger.Info("Virtual keyboard created",
		options.Logger.Field().String("deviceName", options.VirtualDeviceName))
	return newKeyboard(options.Logger, options.VirtualDeviceName, dev), nil
}

func newKeyboard(logger contracts.Logger, name string, dev eventWriter) *Keyboard {
	return &Keyboard{logger: logger, name: name, dev: dev}
}

// EmitKey writes the key event followed by a SYN_REPORT.
func (k *Keyboard) EmitKey(code contracts.KeyCode, value contracts.KeyValue) error {
	evCode, ok := keyCodes[code]
	if !ok {
		return fmt.Errorf("%w: %s not declared by %s", contracts.ErrEmissionFailure, code, k.name)
	}

	if err := k.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_KEY,
		Code:  evCode,
		Value: int32(value),
	}); err != nil {
		return fmt.Errorf("%w: %s=%d: %v", contracts.ErrEmissionFailure, code, value, err)
	}
	if err := k.dev.WriteOne(&evdev.InputEvent{
		Type: evdev.EV_SYN,
		Code: evdev.SYN_REPORT,
	}); err != nil {
		return fmt.Errorf("%w: sync: %v", contracts.ErrEmissionFailure, err)
	}

	k.logger.Debug("Key event emitted",
		k.logger.Field().String("key", code.String()),
		k.logger.Field().Int("value", int(value)))
	return nil
}

// Close destroys the device.
func (k *Keyboard) Close() error {
	var err error
	k.once.Do(func() {
		err = k.dev.Close()
		k.logger.Info("Virtual keyboard destroyed", k.logger.Field().String("deviceName", k.name))
	})
	return err
}
