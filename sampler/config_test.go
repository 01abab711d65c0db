package sampler

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
	"pipecut/session"
)

func TestLoadCfg_Defaults(t *testing.T) {
	cfg, err := loadCfg(ini.Empty())
	require.NoError(t, err)

	assert.Equal(t, "Assembly 1.big_coll", cfg.RegionName)
	assert.Equal(t, []string{"AbsoluteTotalPressure"}, cfg.Fields)
	assert.Equal(t, 0.001, cfg.UnitScale)
	assert.Equal(t, 0.15, cfg.ThresholdRadius)
	assert.Equal(t, ModeCylindrical, cfg.Mode)
	assert.Equal(t, ',', cfg.Delimiter)
	assert.Equal(t, 1, cfg.HeaderRows)
	assert.Equal(t, "alongCurveCut", cfg.PlaneName)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipecut.ini")
	content := `
[sampler]
RegionName = Assembly 2.small_coll
Fields = AbsolutePressure, Density ,Temperature
InputPath = pipes/L/D/In/origins.csv
SessionPath = runs/regime60.sim
UnitScale = 1
Mode = planar
Delimiter = |
HeaderRows = 0
Plot = true

[server]
Addr = 127.0.0.1:9100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Assembly 2.small_coll", cfg.RegionName)
	assert.Equal(t, []string{"AbsolutePressure", "Density", "Temperature"}, cfg.Fields)
	assert.Equal(t, 1.0, cfg.UnitScale)
	assert.Equal(t, ModePlanar, cfg.Mode)
	assert.Equal(t, '|', cfg.Delimiter)
	assert.Equal(t, 0, cfg.HeaderRows)
	assert.True(t, cfg.Plot)
	assert.Equal(t, "127.0.0.1:9100", cfg.Addr)
	assert.Equal(t, filepath.Join("runs", "regime60.PipeCuts"), cfg.OutputDirectory())
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_BadDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipecut.ini")
	require.NoError(t, os.WriteFile(path, []byte("[sampler]\nDelimiter = ::\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_CommentCharsInValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipecut.ini")
	content := `
; 分号分隔的输入
[sampler]
Delimiter = ;
InputPath = runs/#3/origins.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ';', cfg.Delimiter)
	assert.Equal(t, "runs/#3/origins.csv", cfg.InputPath)
	require.NoError(t, cfg.Validate())

	in := filepath.Join(t.TempDir(), "origins.csv")
	require.NoError(t, os.WriteFile(in, []byte("x;y;z\n0;0;0\n0;0;1000\n"), 0o644))
	cfg.InputPath = in
	cfg.OutputDir = t.TempDir()
	cfg.Mode = ModePlanar
	mem := session.NewMemory([]string{cfg.RegionName}, map[string]session.FieldFunc{
		"AbsoluteTotalPressure": session.Constant(1),
	})
	summary, err := Run(mem, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Stations)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty region":     func(c *Config) { c.RegionName = "" },
		"no fields":        func(c *Config) { c.Fields = nil },
		"blank field":      func(c *Config) { c.Fields = []string{"Density", ""} },
		"zero scale":       func(c *Config) { c.UnitScale = 0 },
		"unknown mode":     func(c *Config) { c.Mode = "spherical" },
		"negative radius":  func(c *Config) { c.ThresholdRadius = -1 },
		"negative headers": func(c *Config) { c.HeaderRows = -1 },
		"no delimiter":     func(c *Config) { c.Delimiter = 0 },
		"quote delimiter":  func(c *Config) { c.Delimiter = '"' },
		"bad rune":         func(c *Config) { c.Delimiter = utf8.RuneError },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	planar := DefaultConfig()
	planar.Mode = ModePlanar
	planar.ThresholdRadius = 0
	assert.NoError(t, planar.Validate())
}

func TestConfig_OutputDirectory(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.OutputDirectory())
	cfg.OutputDir = "out"
	cfg.SessionPath = "x.sim"
	assert.Equal(t, "out", cfg.OutputDirectory())
}
