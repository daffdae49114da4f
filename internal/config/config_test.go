package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	t.Setenv(EnvJobs, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Jobs)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.Echo)
	assert.Empty(t, cfg.Variables)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvJobs, "")
	path := filepath.Join(t.TempDir(), "complexpr.yaml")
	src := "jobs: 3\necho: true\nlog_level: debug\nvariables:\n  x: 2i\n  y: x^2\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Jobs:      3,
		Echo:      true,
		LogLevel:  "debug",
		Variables: map[string]string{"x": "2i", "y": "x^2"},
	}, cfg)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: 3\n"), 0644))
	t.Setenv(EnvJobs, "7")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Jobs)

	t.Setenv(EnvJobs, "many")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv(EnvJobs, "")
	cases := map[string]string{
		"syntax":    "jobs: [\n",
		"jobs":      "jobs: 0\n",
		"log-level": "log_level: loud\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "complexpr.yaml")
			require.NoError(t, os.WriteFile(path, []byte(src), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvJobs, "")
	path := filepath.Join(t.TempDir(), "sub", "complexpr.yaml")
	want := &Config{Jobs: 2, LogLevel: "info", Variables: map[string]string{"z": "1 + i"}}
	require.NoError(t, want.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
