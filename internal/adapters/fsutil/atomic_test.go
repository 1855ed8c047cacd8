package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactPathRejectsInvalidNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		stem    string
		wantErr string
	}{
		{name: "empty", stem: "", wantErr: "artifact name is empty"},
		{name: "whitespace", stem: "   ", wantErr: "artifact name is empty"},
		{name: "absolute", stem: "/absolute/path", wantErr: "invalid artifact name"},
		{name: "traversal", stem: "../escape", wantErr: "invalid artifact name"},
		{name: "dot dot", stem: "..", wantErr: "invalid artifact name"},
		{name: "backslash", stem: `dir\file`, wantErr: "invalid artifact name"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ArtifactPath(t.TempDir(), tc.stem, ".ptSim")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestArtifactPathJoinsDirAndExtension(t *testing.T) {
	t.Parallel()

	path, err := ArtifactPath("out/", "session", ".ptExp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "session.ptExp"), path)

	path, err = ArtifactPath("", "session", ".ptExp")
	require.NoError(t, err)
	assert.Equal(t, "session.ptExp", path)
}

func TestWriteFileAtomicCreatesDirectoryAndReplaces(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "session.ptSim")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), FileMode))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), FileMode))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileMode), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "session", Stem("/logs/session.log"))
	assert.Equal(t, "capture.2026", Stem("capture.2026.txt"))
	assert.Equal(t, "trace", Stem("trace"))
}
