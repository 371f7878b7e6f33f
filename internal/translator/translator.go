// Package translator turns pedal Control Change messages into key taps.
package translator

import (
	"errors"
	"fmt"
	"io"

	"github.com/leandrodaf/midipedals/sdk/contracts"
)

// bindings maps exact message bytes to the key they tap. Only a full-value
// Control Change on channel 1 matches; other values are ignored.
var bindings = map[[3]byte]contracts.KeyCode{
	{176, 66, 127}: contracts.KeyDown,
	{176, 67, 127}: contracts.KeyUp,
}

// Lookup returns the key bound to message, if any.
func Lookup(message []byte) (contracts.KeyCode, bool) {
	if len(message) != 3 {
		return 0, false
	}
	key, ok := bindings[[3]byte(message)]
	return key, ok
}

// Translator owns the virtual keyboard for the lifetime of a connection.
type Translator struct {
	keyboard contracts.VirtualKeyboard
	out      io.Writer
	logger   contracts.Logger
}

// New hands kb to the translator. Callers must not use kb afterwards.
func New(kb contracts.VirtualKeyboard, out io.Writer, logger contracts.Logger) *Translator {
	return &Translator{keyboard: kb, out: out, logger: logger}
}

// Handle echoes message to the console and, on a match, presses and
// releases the bound key.
func (t *Translator) Handle(timestamp uint64, message []byte) error {
	fmt.Fprintf(t.out, "%d: %v (len = %d)\n", timestamp, message, len(message))

	key, ok := Lookup(message)
	if !ok {
		return nil
	}

	t.logger.Debug("Pedal matched",
		t.logger.Field().Bytes("message", message),
		t.logger.Field().String("key", key.String()))

	if err := t.keyboard.EmitKey(key, contracts.KeyPressed); err != nil {
		return emissionError(err)
	}
	if err := t.keyboard.EmitKey(key, contracts.KeyReleased); err != nil {
		return emissionError(err)
	}
	return nil
}

func emissionError(err error) error {
	if errors.Is(err, contracts.ErrEmissionFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", contracts.ErrEmissionFailure, err)
}

// Callback adapts Handle to a contracts.MessageHandler. A failed emission
// aborts that invocation only.
func (t *Translator) Callback() contracts.MessageHandler {
	return func(timestamp uint64, message []byte) {
		if err := t.Handle(timestamp, message); err != nil {
			t.logger.Error("Key emission failed",
				t.logger.Field().Bytes("message", message),
				t.logger.Field().Error("error", err))
		}
	}
}
