//go:build linux

package inject

import (
	"fmt"

	"github.com/ThomasT75/uinput"
)

// NewVirtualMouse creates a uinput mouse called name.
func NewVirtualMouse(name string) (*Injector, error) {
	mouse, err := uinput.CreateMouse("/dev/uinput", []byte(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual mouse: %w", err)
	}
	return New(mouse), nil
}
