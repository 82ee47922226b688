package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range cfgDefaults {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "contactbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 100, cfg.MaxBatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ModeServer, cfg.OpMode)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	testCases := map[string]struct {
		file    string
		env     map[string]string
		want    func(*Config)
		wantErr bool
	}{
		"ok - no file": {
			want: func(c *Config) {},
		},
		"ok - file overrides defaults": {
			file: "server_addr: \":9090\"\nbatch_size: 25\nlog_format: json\n",
			want: func(c *Config) {
				c.ServerAddr = ":9090"
				c.BatchSize = 25
				c.LogFormat = "json"
			},
		},
		"ok - env overrides file": {
			file: "batch_size: 25\n",
			env:  map[string]string{"BATCH_SIZE": "5", "LOG_LEVEL": "debug"},
			want: func(c *Config) {
				c.BatchSize = 5
				c.LogLevel = "debug"
			},
		},
		"ok - comment only file": {
			file: "# nothing here\n",
			want: func(c *Config) {},
		},
		"error - unknown field": {
			file:    "batch: 25\n",
			wantErr: true,
		},
		"error - invalid yaml": {
			file:    "{{invalid yaml",
			wantErr: true,
		},
		"error - env not an integer": {
			env:     map[string]string{"MAX_BATCH_SIZE": "lots"},
			wantErr: true,
		},
		"error - invalid values": {
			env:     map[string]string{"BATCH_SIZE": "0", "LOG_LEVEL": "loud"},
			wantErr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			var path string
			if tc.file != "" {
				path = writeFile(t, tc.file)
			}

			cfg, err := Load(path)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			want := Default()
			tc.want(want)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		ServerAddr:   "",
		BatchSize:    20,
		MaxBatchSize: 10,
		LogLevel:     "verbose",
		LogFormat:    "xml",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nSERVER_ADDR=\":7070\"\n\nLOG_FORMAT='json'\n"), 0o644))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, ":7070", os.Getenv("SERVER_ADDR"))
	assert.Equal(t, "json", os.Getenv("LOG_FORMAT"))

	bad := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(bad, []byte("NOT A PAIR\n"), 0o644))
	assert.Error(t, loadEnvFile(bad))
}
