// Package bridge wires a MIDI input port to the virtual keyboard and keeps
// the connection open until the user asks to exit.
package bridge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/leandrodaf/midipedals/internal/selector"
	"github.com/leandrodaf/midipedals/internal/translator"
	"github.com/leandrodaf/midipedals/sdk/contracts"
	"go.uber.org/multierr"
)

// Config holds everything Run needs.
type Config struct {
	Client      contracts.ClientMIDI
	NewKeyboard func() (contracts.VirtualKeyboard, error)
	Input       io.Reader // Console input: port selection and the exit line.
	Output      io.Writer // Console output.
	Logger      contracts.Logger
}

// Run selects a port, builds the keyboard, connects and blocks until a line
// is read from Input or ctx is done. The connection is closed before the
// keyboard so no handler runs against a destroyed device.
func Run(ctx context.Context, cfg Config) (err error) {
	in := bufio.NewReader(cfg.Input)
	out := cfg.Output

	ports, err := cfg.Client.ListPorts()
	if err != nil {
		return err
	}
	port, err := selector.SelectPort(ports, in, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nOpening connection")
	name, err := cfg.Client.PortName(port.Index)
	if err != nil {
		if !errors.Is(err, contracts.ErrPortNameUnavailable) {
			err = fmt.Errorf("%w: %v", contracts.ErrPortNameUnavailable, err)
		}
		return err
	}

	kb, err := cfg.NewKeyboard()
	if err != nil {
		if !errors.Is(err, contracts.ErrDeviceBuildFailure) {
			err = fmt.Errorf("%w: %v", contracts.ErrDeviceBuildFailure, err)
		}
		return err
	}
	defer func() {
		multierr.AppendInto(&err, kb.Close())
	}()

	tr := translator.New(kb, out, cfg.Logger)
	conn, err := cfg.Client.Connect(port.Index, tr.Callback())
	if err != nil {
		if !errors.Is(err, contracts.ErrConnectionFailure) {
			err = fmt.Errorf("%w: %v", contracts.ErrConnectionFailure, err)
		}
		return err
	}

	fmt.Fprintf(out, "Connection open, reading input from '%s' (press enter to exit) ...\n", name)
	cfg.Logger.Info("Bridge running",
		cfg.Logger.Field().Int("port", port.Index),
		cfg.Logger.Field().String("portName", name),
		cfg.Logger.Field().String("entityName", port.EntityName),
		cfg.Logger.Field().String("manufacturer", port.Manufacturer))

	waitForExit(ctx, in)

	multierr.AppendInto(&err, conn.Close())
	fmt.Fprintln(out, "Closing connection")
	return err
}

// waitForExit returns after one line (or EOF) on in, or when ctx is done.
func waitForExit(ctx context.Context, in *bufio.Reader) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = in.ReadString('\n')
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
