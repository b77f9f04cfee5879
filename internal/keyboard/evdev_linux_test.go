//go:build linux

package keyboard

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCaps(t *testing.T, root, event, caps string) {
	t.Helper()
	dir := filepath.Join(root, event, "device", "capabilities")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key"), []byte(caps+"\n"), 0644))
}

func TestKeyboardDevices_SkipsPointersAndOthers(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("fixture bitmaps use 64-bit words")
	}

	root := t.TempDir()
	writeCaps(t, root, "event0", "10000000000000 0")
	writeCaps(t, root, "event3", "120013 803078f800d001 feffffdfffefffff fffffffffffffffe")
	writeCaps(t, root, "event7", "1f0000 0 0 0 0")
	writeCaps(t, root, "mouse0", "120013 803078f800d001 feffffdfffefffff fffffffffffffffe")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "event9"), 0755))

	devices, err := keyboardDevices(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"event3"}, devices)
}

func TestKeyboardDevices_MissingRoot(t *testing.T) {
	_, err := keyboardDevices(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
