package sampler

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
	"pipecut/csvio"
	"pipecut/model"
)

type Mode string

const (
	ModePlanar      Mode = "planar"
	ModeCylindrical Mode = "cylindrical"
)

const DefaultConfigPath = "conf/pipecut.ini"

type Config struct {
	RegionName  string
	Fields      []string
	InputPath   string
	OutputDir   string
	SessionPath string

	UnitScale       float64
	ThresholdRadius float64
	Mode            Mode

	Delimiter  rune
	HeaderRows int
	Plot       bool

	// 宿主对象名称
	PlaneName     string
	ReportName    string
	FrameName     string
	ThresholdName string

	Addr string
}

// LoadConfig reads an ini file. A missing file falls back to the defaults.
// Only whole-line comments are recognized, values may contain ';' and '#'.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Warn("config file not found, using defaults")
		return loadCfg(ini.Empty())
	}
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return loadCfg(file)
}

func DefaultConfig() *Config {
	cfg, _ := loadCfg(ini.Empty())
	return cfg
}

func loadCfg(file *ini.File) (*Config, error) {
	sec := file.Section("sampler")
	cfg := &Config{
		RegionName:      sec.Key("RegionName").MustString("Assembly 1.big_coll"),
		Fields:          sec.Key("Fields").Strings(","),
		InputPath:       sec.Key("InputPath").MustString("origins.csv"),
		OutputDir:       sec.Key("OutputDir").String(),
		SessionPath:     sec.Key("SessionPath").String(),
		UnitScale:       sec.Key("UnitScale").MustFloat64(model.UnitScale),
		ThresholdRadius: sec.Key("ThresholdRadius").MustFloat64(model.ThresholdRadius),
		Mode:            Mode(sec.Key("Mode").MustString(string(ModeCylindrical))),
		HeaderRows:      sec.Key("HeaderRows").MustInt(1),
		Plot:            sec.Key("Plot").MustBool(false),
		PlaneName:       sec.Key("PlaneName").MustString(model.PlaneName),
		ReportName:      sec.Key("ReportName").MustString(model.ReportName),
		FrameName:       sec.Key("FrameName").MustString(model.FrameName),
		ThresholdName:   sec.Key("ThresholdName").MustString(model.ThresholdName),
		Addr:            file.Section("server").Key("Addr").MustString(":9000"),
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = []string{"AbsoluteTotalPressure"}
	}

	delimiter := sec.Key("Delimiter").MustString(",")
	r, size := utf8.DecodeRuneInString(delimiter)
	if size == 0 || size != len(delimiter) || r == utf8.RuneError {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	cfg.Delimiter = r

	log.WithFields(log.Fields{
		"RegionName":      cfg.RegionName,
		"Fields":          cfg.Fields,
		"InputPath":       cfg.InputPath,
		"Mode":            cfg.Mode,
		"UnitScale":       cfg.UnitScale,
		"ThresholdRadius": cfg.ThresholdRadius,
	}).Debug("加载采样配置")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RegionName == "" {
		return errors.New("region name is empty")
	}
	if len(c.Fields) == 0 {
		return errors.New("no fields to sample")
	}
	for _, f := range c.Fields {
		if f == "" {
			return errors.New("empty field name")
		}
	}
	if c.UnitScale <= 0 {
		return fmt.Errorf("unit scale must be positive, got %v", c.UnitScale)
	}
	if c.Mode != ModePlanar && c.Mode != ModeCylindrical {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Mode == ModeCylindrical && c.ThresholdRadius <= 0 {
		return fmt.Errorf("threshold radius must be positive, got %v", c.ThresholdRadius)
	}
	if !validDelimiter(c.Delimiter) {
		return fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("header rows must not be negative, got %d", c.HeaderRows)
	}
	return nil
}

// OutputDirectory falls back to <session>.PipeCuts next to the session file.
func (c *Config) OutputDirectory() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	if c.SessionPath != "" {
		return csvio.DirFromSessionPath(c.SessionPath, ".PipeCuts")
	}
	return "."
}

// 与 encoding/csv 对分隔符的限制一致
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}
