package hooks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_SecurityBlocks(t *testing.T) {
	dir := t.TempDir()

	r, err := NewRecorder(dir)
	require.NoError(t, err)

	block := SecurityBlock{
		Timestamp: time.Now(),
		SessionID: "1700000000-deadbeef",
		HookType:  "PreToolUse",
		ToolName:  "Bash",
		Source:    "rules",
		Reason:    "force pushes are not allowed",
	}
	require.NoError(t, r.RecordSecurityBlock(block))

	blocks := r.SecurityBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "rules", blocks[0].Source)

	// A fresh recorder reads the same state back from disk.
	reloaded, err := NewRecorder(dir)
	require.NoError(t, err)
	blocks = reloaded.SecurityBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "force pushes are not allowed", blocks[0].Reason)
}

func TestRecorder_AutoContinueCounter(t *testing.T) {
	dir := t.TempDir()

	r, err := NewRecorder(dir)
	require.NoError(t, err)

	assert.Zero(t, r.AutoContinueCount("s1"))

	count, err := r.IncrementAutoContinue("s1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = r.IncrementAutoContinue("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Zero(t, r.AutoContinueCount("s2"))

	reloaded, err := NewRecorder(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.AutoContinueCount("s1"))
}

func TestNewRecorder_CorruptStateStartsOver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hook-state.json"), []byte("{broken"), 0644))

	r, err := NewRecorder(dir)
	require.NoError(t, err)
	assert.Empty(t, r.SecurityBlocks())

	_, err = r.IncrementAutoContinue("s1")
	assert.NoError(t, err)
}

func TestNewRecorder_CreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	_, err := NewRecorder(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
