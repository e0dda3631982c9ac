//go:build !linux

package x11

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/pointer"
)

func openXlib(string) (Display, error) {
	return nil, fmt.Errorf("xlib is only available on linux: %w", pointer.ErrUnsupported)
}
