// Package selector resolves which MIDI input port to listen on.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leandrodaf/midipedals/sdk/contracts"
)

// SelectPort picks one of ports. A single port is chosen without reading from in;
// with several, the list is printed to out and one line is read from in.
// An invalid answer is not retried.
func SelectPort(ports []contracts.PortInfo, in *bufio.Reader, out io.Writer) (contracts.PortInfo, error) {
	switch len(ports) {
	case 0:
		return contracts.PortInfo{}, contracts.ErrNoDeviceFound
	case 1:
		fmt.Fprintf(out, "Choosing the only available input port: %s\n", ports[0].Name)
		return ports[0], nil
	}

	fmt.Fprintln(out, "\nAvailable input ports:")
	for i, p := range ports {
		fmt.Fprintf(out, "%d: %s\n", i, p.Name)
	}
	fmt.Fprint(out, "Please select input port: ")

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return contracts.PortInfo{}, fmt.Errorf("read port selection: %w", err)
	}

	answer := strings.TrimSpace(line)
	idx, err := strconv.ParseUint(strings.TrimPrefix(answer, "+"), 10, strconv.IntSize-1)
	if err != nil {
		return contracts.PortInfo{}, fmt.Errorf("%w: %q", contracts.ErrInvalidSelection, answer)
	}
	if idx >= uint64(len(ports)) {
		return contracts.PortInfo{}, fmt.Errorf("%w: %d out of range", contracts.ErrInvalidSelection, idx)
	}
	return ports[idx], nil
}
