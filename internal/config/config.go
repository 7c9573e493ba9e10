// Package config resolves runtime settings from defaults, an optional TOML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// Environment overrides.
const (
	EnvDB       = "MATHDRILL_DB"
	EnvLogFile  = "MATHDRILL_LOG"
	EnvLogLevel = "MATHDRILL_LOG_LEVEL"
)

// FileConfig represents the TOML configuration file. Pointer fields stay
// nil when a key is absent so defaults survive.
type FileConfig struct {
	Quiz    QuizConfig    `toml:"quiz"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// QuizConfig maps quiz defaults.
type QuizConfig struct {
	QuestionCount       *int    `toml:"question-count"`
	TimerSeconds        *int    `toml:"timer-seconds"`
	CorrectFeedbackMS   *int    `toml:"correct-feedback-ms"`
	IncorrectFeedbackMS *int    `toml:"incorrect-feedback-ms"`
	DivisionRange       *string `toml:"division-range"`
}

// StorageConfig maps storage settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// Config is the resolved configuration.
type Config struct {
	QuestionCount          int
	TimerSeconds           int
	CorrectFeedbackDelay   time.Duration
	IncorrectFeedbackDelay time.Duration
	DivisionRange          string

	DBPath   string
	LogLevel string
	LogFile  string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		QuestionCount:          session.DefaultQuestionCount,
		TimerSeconds:           session.DefaultTimerSeconds,
		CorrectFeedbackDelay:   session.DefaultCorrectFeedbackDelay,
		IncorrectFeedbackDelay: session.DefaultIncorrectFeedbackDelay,
		DivisionRange:          "low",
		DBPath:                 DefaultDBPath(),
		LogLevel:               "warn",
		LogFile:                DefaultLogPath(),
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Load resolves defaults, the file at path and the environment, in that
// order, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	fc, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Apply(fc)
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply overlays the keys set in fc.
func (c *Config) Apply(fc FileConfig) {
	if v := fc.Quiz.QuestionCount; v != nil {
		c.QuestionCount = *v
	}
	if v := fc.Quiz.TimerSeconds; v != nil {
		c.TimerSeconds = *v
	}
	if v := fc.Quiz.CorrectFeedbackMS; v != nil {
		c.CorrectFeedbackDelay = time.Duration(*v) * time.Millisecond
	}
	if v := fc.Quiz.IncorrectFeedbackMS; v != nil {
		c.IncorrectFeedbackDelay = time.Duration(*v) * time.Millisecond
	}
	if v := fc.Quiz.DivisionRange; v != nil {
		c.DivisionRange = *v
	}
	if v := fc.Storage.DB; v != nil {
		c.DBPath = *v
	}
	if v := fc.Log.Level; v != nil {
		c.LogLevel = *v
	}
	if v := fc.Log.File; v != nil {
		c.LogFile = *v
	}
}

// ApplyEnv overlays the MATHDRILL_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate rejects quiz defaults outside the session limits.
func (c Config) Validate() error {
	if c.QuestionCount < session.MinQuestionCount || c.QuestionCount > session.MaxQuestionCount {
		return fmt.Errorf("question-count %d outside %d-%d",
			c.QuestionCount, session.MinQuestionCount, session.MaxQuestionCount)
	}
	if c.TimerSeconds < session.MinTimerSeconds || c.TimerSeconds > session.MaxTimerSeconds {
		return fmt.Errorf("timer-seconds %d outside %d-%d",
			c.TimerSeconds, session.MinTimerSeconds, session.MaxTimerSeconds)
	}
	for name, d := range map[string]time.Duration{
		"correct-feedback-ms":   c.CorrectFeedbackDelay,
		"incorrect-feedback-ms": c.IncorrectFeedbackDelay,
	} {
		if d < session.MinFeedbackDelay || d > session.MaxFeedbackDelay {
			return fmt.Errorf("%s %d outside %d-%d", name, d.Milliseconds(),
				session.MinFeedbackDelay.Milliseconds(), session.MaxFeedbackDelay.Milliseconds())
		}
	}
	if _, err := problemgen.RangeByName(c.DivisionRange); err != nil {
		return fmt.Errorf("division-range: %w", err)
	}
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	return nil
}

// SessionDefaults returns the session config a new quiz starts from.
func (c Config) SessionDefaults() session.Config {
	s := session.DefaultConfig()
	s.QuestionCount = c.QuestionCount
	s.TimerSeconds = c.TimerSeconds
	s.CorrectFeedbackDelay = c.CorrectFeedbackDelay
	s.IncorrectFeedbackDelay = c.IncorrectFeedbackDelay
	if r, err := problemgen.RangeByName(c.DivisionRange); err == nil {
		s.DividendRange = r
	}
	return s
}
