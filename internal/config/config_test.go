package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "xslt3 -xsl:{{XSL}} -s:{{XML}} -o:{{OUT}}", cfg.EngineCmd)
	assert.Equal(t, "./schematron", cfg.SchematronDir)
	assert.Equal(t, "./xslt_schematron", cfg.OutputDir)
	assert.True(t, cfg.ShowProgress)
	assert.Equal(t, 50.0, cfg.GoalSizeMB)
	assert.Equal(t, 60.0, cfg.GoalTimeSeconds)
	assert.Contains(t, cfg.FatalKeywords, "critical")
	assert.Contains(t, cfg.WarningKeywords, "should")
}

func TestLoad_LocalConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"schematron_dir": "./rules",
		"goal_size_mb": 100
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./rules", cfg.SchematronDir)
	assert.Equal(t, 100.0, cfg.GoalSizeMB)
	assert.Equal(t, "./results", cfg.ResultsDir, "untouched keys keep defaults")
}

func TestLoad_EnvironmentOverridesLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cache_dir": "./from-file"}`), 0644))

	t.Setenv("SVALID_CACHE_DIR", "./from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./from-env", cfg.CacheDir)
}

func TestLoad_MissingLocalConfigIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "./schematron", cfg.SchematronDir)
}

func TestLoad_MalformedLocalConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local config")
}

func TestLoad_EngineCmdPlaceholdersRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"engine_cmd": "saxon transform"}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{{XSL}}")
}

func TestLoad_EmptyEngineCmdFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"engine_cmd": ""}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "engine_cmd", envTransform("SVALID_ENGINE_CMD"))
	assert.Equal(t, "goal_size_mb", envTransform("SVALID_GOAL_SIZE_MB"))
}

func TestEnsureDirs(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	cfg := &Configuration{
		OutputDir:  filepath.Join(base, "out"),
		CacheDir:   filepath.Join(base, "cache"),
		TempDir:    filepath.Join(base, "temp"),
		ResultsDir: filepath.Join(base, "results"),
	}

	require.NoError(t, cfg.EnsureDirs())
	for _, dir := range []string{cfg.OutputDir, cfg.CacheDir, cfg.TempDir, cfg.ResultsDir} {
		assert.DirExists(t, dir)
	}
}
