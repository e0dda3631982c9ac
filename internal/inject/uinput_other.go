//go:build !linux

package inject

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/pointer"
)

func NewVirtualMouse(string) (*Injector, error) {
	return nil, fmt.Errorf("uinput is only available on linux: %w", pointer.ErrUnsupported)
}
