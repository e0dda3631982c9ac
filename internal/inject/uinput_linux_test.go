//go:build linux

package inject

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVirtualMouse(t *testing.T) {
	if _, err := os.Stat("/dev/uinput"); err != nil {
		t.Skip("/dev/uinput not available")
	}

	inj, err := NewVirtualMouse("pointerbridge test mouse")
	if err != nil {
		t.Skipf("cannot create uinput device: %v", err)
	}
	defer inj.Close()

	assert.NoError(t, inj.Move(1, 0))
	assert.NoError(t, inj.Move(-1, 0))
}
