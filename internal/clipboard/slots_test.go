package clipboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotName(t *testing.T) {
	assert.Equal(t, "claude_paste_01.png", slotName(1))
	assert.Equal(t, "claude_paste_10.png", slotName(10))
	assert.Equal(t, "claude_paste_99.png", slotName(99))
}

func TestNextSlotEmptyDir(t *testing.T) {
	assert.Equal(t, "claude_paste_01.png", nextSlot(t.TempDir()))
}

func TestNextSlotFillsGaps(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []int{1, 2, 4} {
		touch(t, filepath.Join(dir, slotName(n)))
	}
	assert.Equal(t, "claude_paste_03.png", nextSlot(dir))
}

func TestNextSlotAllTaken(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	for i := 1; i <= maxSlots; i++ {
		path := filepath.Join(dir, slotName(i))
		touch(t, path)
		mtime := now.Add(-time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	// Higher numbers were written earlier, so 99 is the oldest.
	assert.Equal(t, "claude_paste_99.png", nextSlot(dir))
}

func TestOldestSlotIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-24 * time.Hour)

	foreign := filepath.Join(dir, "claude_paste_x.png")
	touch(t, foreign)
	require.NoError(t, os.Chtimes(foreign, old, old))

	slot := filepath.Join(dir, slotName(7))
	touch(t, slot)

	assert.Equal(t, "claude_paste_07.png", oldestSlot(dir))
}

func TestOldestSlotEmpty(t *testing.T) {
	assert.Empty(t, oldestSlot(t.TempDir()))
}

func TestIsImageSlot(t *testing.T) {
	assert.True(t, IsImageSlot(`C:\Users\me\AppData\Local\Temp\claude_paste_07.png`))
	assert.True(t, IsImageSlot("/mnt/c/Temp/claude_paste_99.png"))
	assert.False(t, IsImageSlot(`C:\docs\claude_paste_notes.png`))
	assert.False(t, IsImageSlot(`C:\docs\report.pdf`))
}
