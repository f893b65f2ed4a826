package install

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionApply(t *testing.T) {
	s := NewSession(Default())
	assert.NotEqual(t, uuid.Nil, s.ID)

	s.Apply([]byte(`{"partition": {"device": "/dev/sdc", "mode": "auto"}, "desktop": "gnome"}`))
	assert.Equal(t, "/dev/sdc", s.Config.Partition.Device)
	assert.Equal(t, `"gnome"`, s.Config.Desktop.String())

	s.Apply([]byte(`{"partition": {"device": 123}}`))
	if diff := cmp.Diff(Default(), s.Config); diff != "" {
		t.Errorf("malformed update should reset to defaults (-want +got):\n%s", diff)
	}
}

func TestSessionIDsDiffer(t *testing.T) {
	assert.NotEqual(t, NewSession(Default()).ID, NewSession(Default()).ID)
}

func TestSessionSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	s := NewSession(Default())
	s.Config.Partition.Device = "/dev/sda"
	s.Config.Partition.SwapSize = "2G"
	s.Config.Kernel = MustValue("linux")
	s.RecordStorage(
		[]SystemStorageInfo{{Partitions: []P{{Name: strPtr("sda1")}}}},
		[]SystemStorageInfo{{Partitions: []P{{Name: strPtr("sda1"), Action: actionPtr(ActionShrink)}}}},
	)
	require.Len(t, s.Config.Partition.Planning.SystemStorageInfoCurrent, 1)

	require.NoError(t, s.Snapshot(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "system_storage_info")

	var back map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &back))
	assert.JSONEq(t, `"linux"`, string(back["kernel"]))

	loaded, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "/dev/sda", loaded.Partition.Device)
	assert.Equal(t, "2G", loaded.Partition.SwapSize)
	assert.Empty(t, loaded.Partition.Planning.SystemStorageInfo)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "config.json"), Default())
	assert.Error(t, err)
}

func TestSessionApplyReplacesPlanning(t *testing.T) {
	s := NewSession(Default())
	s.RecordStorage([]SystemStorageInfo{{Partitions: []P{{Name: strPtr("sda1")}}}}, nil)

	s.Apply([]byte(`{"partition": {"device": "/dev/sda"}}`))
	assert.Empty(t, s.Config.Partition.Planning.SystemStorageInfo)

	s.Apply([]byte(`{"partition": {"device": "/dev/sda", "system_storage_info": [{"partitions": [{"name": "sda1"}]}]}}`))
	require.Len(t, s.Config.Partition.Planning.SystemStorageInfo, 1)
	assert.Equal(t, "sda1", *s.Config.Partition.Planning.SystemStorageInfo[0].Partitions[0].Name)
}
