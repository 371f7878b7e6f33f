//go:build !linux

package uinput

import (
	"fmt"

	"github.com/leandrodaf/midipedals/sdk/contracts"
)

// NewVirtualKeyboard fails: uinput only exists on Linux.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	options.Logger.Warn("NewVirtualKeyboard called on a non-Linux system")
	return nil, fmt.Errorf("%w: %v", contracts.ErrDeviceBuildFailure, contracts.ErrUnsupportedOS)
}
