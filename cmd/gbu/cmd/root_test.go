package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "gbu version "+Version+"\n", run(t, "version"))
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yml")
	dbFile := filepath.Join(dir, "data", "gbu.db")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database:\n  driver: sqlite\n  database: "+dbFile+"\n  log_level: silent\n"), 0o600))

	assert.Contains(t, run(t, "seed", "--config", cfgFile), "Einträge angelegt")
	assert.FileExists(t, dbFile)
	assert.Equal(t, "0 Einträge angelegt\n", run(t, "seed", "--config", cfgFile))
}
