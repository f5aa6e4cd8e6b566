package nocd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusUnknownDataIsInvalid(t *testing.T) {
	status := GetStatus([]byte("not a real executable"))
	assert.True(t, status.Any(Exists))
	assert.True(t, status.Any(Invalid))
	assert.False(t, status.Any(RegularVersion|PlutoniumPak|AtomicEdition))
}

func TestGetStatusFromPathMissingFile(t *testing.T) {
	status, err := GetStatusFromPath(filepath.Join(t.TempDir(), "does-not-exist.exe"))
	require.NoError(t, err)
	assert.Equal(t, Missing, status)
}

func TestGetStatusFromPathEmptyPath(t *testing.T) {
	status, err := GetStatusFromPath("")
	require.NoError(t, err)
	assert.Equal(t, Missing, status)
}

func TestIsCrackableFalseForUnknownExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DUKE3D.EXE")
	require.NoError(t, os.WriteFile(path, []byte("not a known executable"), 0o644))

	crackable, err := IsCrackable(path)
	require.NoError(t, err)
	assert.False(t, crackable)
}

func TestCrackRefusesUnknownExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DUKE3D.EXE")
	require.NoError(t, os.WriteFile(path, []byte("not a known executable"), 0o644))

	err := Crack(path, path)
	assert.Error(t, err)
}

func TestCrackRefusesUnknownHashAtAtomicEditionSize(t *testing.T) {
	// Craft data that hashes to nothing known; Crack must reject it before
	// ever reaching a size check meant only for matched editions. This
	// just exercises the "not crackable" refusal path end to end.
	dir := t.TempDir()
	path := filepath.Join(dir, "DUKE3D.EXE")
	require.NoError(t, os.WriteFile(path, make([]byte, atomicEditionExecutableSize), 0o644))

	err := Crack(path, path)
	assert.Error(t, err)
}

func TestStatusAnyNone(t *testing.T) {
	s := Exists | AtomicEdition
	assert.True(t, s.Any(AtomicEdition))
	assert.True(t, s.None(Cracked))
	assert.False(t, s.Any(Cracked))
}
