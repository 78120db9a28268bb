package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRunFile_ValidYAML_LoadsCorrectly(t *testing.T) {
	// GIVEN a run config with every section
	path := writeRunFile(t, `
workload: ../testdata/two-process.mix
random_file: ../testdata/random-numbers
seed: 7
policies: [fcfs, sjf]
quantum: 3
io_burst_offset: 1
verbose: true
show_random: false
check: true
format: table
`)

	// WHEN loaded
	rf, err := LoadRunFile(path)

	// THEN all fields are populated
	require.NoError(t, err)
	assert.Equal(t, "../testdata/two-process.mix", rf.Workload)
	require.NotNil(t, rf.Seed)
	assert.Equal(t, int64(7), *rf.Seed)
	assert.Equal(t, []string{"fcfs", "sjf"}, rf.Policies)
	require.NotNil(t, rf.Quantum)
	assert.Equal(t, int64(3), *rf.Quantum)
	require.NotNil(t, rf.ShowRandom)
	assert.False(t, *rf.ShowRandom)
	assert.Equal(t, "table", rf.Format)
}

func TestLoadRunFile_OmittedFields_StayNil(t *testing.T) {
	rf, err := LoadRunFile(writeRunFile(t, "format: text\n"))
	require.NoError(t, err)
	assert.Nil(t, rf.Seed)
	assert.Nil(t, rf.Quantum)
	assert.Nil(t, rf.Verbose)
}

func TestLoadRunFile_UnknownKey_ReturnsError(t *testing.T) {
	// GIVEN a typo in a key name
	path := writeRunFile(t, "quantun: 3\n")

	// THEN strict parsing rejects it
	_, err := LoadRunFile(path)
	assert.Error(t, err)
}

func TestLoadRunFile_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadRunFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
