package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		wantErr  bool
		validate func(t *testing.T, cfg *spec.InstallSpec)
	}{
		{
			name: "load explicit config file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				configPath := filepath.Join(dir, "testdata", "mcpify.yml")
				require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
				content := `name: mcpify
repo: acme/mcpify
release_tag: v1.2.3
install_dir: /opt/bin
algorithm: sha512`
				require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
				return configPath
			},
			validate: func(t *testing.T, cfg *spec.InstallSpec) {
				assert.Equal(t, "mcpify", cfg.Name)
				assert.Equal(t, "acme/mcpify", cfg.Repo)
				assert.Equal(t, "v1.2.3", cfg.ReleaseTag)
				assert.Equal(t, "/opt/bin", cfg.InstallDir)
				assert.Equal(t, spec.Sha512, cfg.Algorithm)
				// Load does not apply defaults
				assert.Empty(t, cfg.ChecksumFile)
			},
		},
		{
			name: "config file not found",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nonexistent.yml")
			},
			wantErr: true,
		},
		{
			name: "invalid yaml",
			setup: func(t *testing.T) string {
				configPath := filepath.Join(t.TempDir(), "invalid.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(`invalid yaml content: [`), 0644))
				return configPath
			},
			wantErr: true,
		},
		{
			name: "unknown key",
			setup: func(t *testing.T) string {
				configPath := filepath.Join(t.TempDir(), "typo.yml")
				require.NoError(t, os.WriteFile(configPath, []byte("instal_dir: /opt/bin\n"), 0644))
				return configPath
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func writeDefaultConfig(t *testing.T, dir, content string) string {
	t.Helper()
	configPath := filepath.Join(dir, ".config", "mcpify-install.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
	}{
		{
			name: "find config in .config/mcpify-install.yml",
			setup: func(t *testing.T) {
				dir := t.TempDir()
				writeDefaultConfig(t, dir, "repo: test/test\n")
				t.Chdir(dir)
			},
		},
		{
			name: "find config in parent directory",
			setup: func(t *testing.T) {
				dir := t.TempDir()
				writeDefaultConfig(t, dir, "repo: test/test\n")
				subdir := filepath.Join(dir, "subdir")
				require.NoError(t, os.MkdirAll(subdir, 0755))
				t.Chdir(subdir)
			},
		},
		{
			name: "no config found",
			setup: func(t *testing.T) {
				t.Chdir(t.TempDir())
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			path, err := Discover()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(filepath.ToSlash(path), ".config/mcpify-install.yml"))
		})
	}
}

func TestLoadOrDiscover(t *testing.T) {
	t.Run("explicit path wins over discovered config", func(t *testing.T) {
		dir := t.TempDir()
		explicitPath := filepath.Join(dir, "explicit.yml")
		require.NoError(t, os.WriteFile(explicitPath, []byte("name: explicit\n"), 0644))
		writeDefaultConfig(t, dir, "name: default\n")
		t.Chdir(dir)

		cfg, path, err := LoadOrDiscover(explicitPath)
		require.NoError(t, err)
		assert.Equal(t, "explicit", cfg.Name)
		assert.Equal(t, explicitPath, path)
	})

	t.Run("discovered config", func(t *testing.T) {
		dir := t.TempDir()
		writeDefaultConfig(t, dir, "name: discovered\n")
		t.Chdir(dir)

		cfg, path, err := LoadOrDiscover("")
		require.NoError(t, err)
		assert.Equal(t, "discovered", cfg.Name)
		assert.Contains(t, path, "mcpify-install.yml")
	})

	t.Run("nothing to discover yields empty spec", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, path, err := LoadOrDiscover("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, &spec.InstallSpec{}, cfg)
	})
}

func TestResolve(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	t.Run("environment overrides config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cfg.yml")
		require.NoError(t, os.WriteFile(path, []byte("release_tag: v0.9.0\ninstall_dir: /from/file\n"), 0644))

		cfg, err := Resolve(path, env(map[string]string{
			EnvReleaseTag: "1.2.3",
			EnvInstallDir: "/from/env",
		}))
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", cfg.ReleaseTag)
		assert.Equal(t, "/from/env", cfg.InstallDir)
		assert.Equal(t, spec.DefaultName, cfg.Name)
	})

	t.Run("defaults without any config", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Resolve("", env(nil))
		require.NoError(t, err)
		assert.True(t, cfg.WantsLatest())
		assert.Equal(t, spec.DefaultInstallDir, cfg.TargetDir())
	})

	t.Run("tag from environment is passed through unchecked", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Resolve("", env(map[string]string{EnvReleaseTag: "v1 /x"}))
		require.NoError(t, err)
		assert.Equal(t, "v1 /x", cfg.ReleaseTag)
	})

	t.Run("invalid field is rejected", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir := t.TempDir()
		path := filepath.Join(dir, "cfg.yml")
		require.NoError(t, os.WriteFile(path, []byte("repo: owner/repo;rm\n"), 0644))

		_, err := Resolve(path, env(nil))
		assert.ErrorContains(t, err, "invalid configuration")
	})
}
