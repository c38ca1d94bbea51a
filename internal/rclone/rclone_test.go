package rclone

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFile_Override(t *testing.T) {
	path, cleanup, err := KeyFile("/tmp/already-have-one.json")
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "/tmp/already-have-one.json", path)
}

func TestKeyFile_WritesEmbeddedKey(t *testing.T) {
	path, cleanup, err := KeyFile("")
	require.NoError(t, err)
	defer cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "service_account")

	cleanup()
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemote(t *testing.T) {
	remote := Remote("/tmp/key.json")
	assert.Equal(t, ":drive,scope=drive.readonly,service_account_file=/tmp/key.json:", remote)
}

func TestDriveRootFolderIDArgs(t *testing.T) {
	assert.Equal(t, []string{"--drive-root-folder-id", "folder-123"}, DriveRootFolderIDArgs("folder-123"))
}
