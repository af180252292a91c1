package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title, "Config.Title should not be empty")
	assert.NotZero(t, cfg.Webserver.Port, "Webserver.Port should not be 0")
	assert.NotEmpty(t, cfg.Webserver.URL, "Webserver.URL should not be empty")
	assert.NotEmpty(t, cfg.DB.Host, "DB.Host should not be empty")
	assert.Equal(t, EngineMySQL, cfg.DB.GormEngine)
	assert.Equal(t, "./setup/version.txt", cfg.Setup.VersionFile)
	assert.True(t, cfg.Setup.RunOnStart)
	assert.Equal(t, "admin", cfg.Admin.Username)

	// nested logger sections with renamed keys
	assert.True(t, cfg.Log.Console.Enabled)
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.Equal(t, 50, cfg.Log.File.ErrorMaxSize)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read main config file")
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{
					Port: 0,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "",
				},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown engine",
			config: Config{
				DB: DB{GormEngine: "oracle"},
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: ErrUnknownGormEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	require.NoError(t, validate(&cfg))

	assert.Equal(t, EngineMySQL, cfg.DB.GormEngine)
	assert.Equal(t, 5, cfg.Webserver.ShutDownTime)
	assert.Equal(t, DefaultAdminUsername, cfg.Admin.Username)
	assert.Equal(t, DefaultVersionFile, cfg.Setup.VersionFile)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090},"DB":{"GormEngine":"sqlite"}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	// untouched values survive the merge
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Setup: Setup{VersionFile: "version.txt"},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, tomlStr)
	assert.True(t, strings.Contains(tomlStr, "Test"), "DumpConfig() output should contain Title")
	assert.Contains(t, tomlStr, "version.txt")
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, jsonStr)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}
