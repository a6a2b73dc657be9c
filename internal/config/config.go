package config

import (
	"fmt"
	"math"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

const (
	SourceFile  = "file"
	SourceMySQL = "mysql"
)

type TLSConfig struct {
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`
}

// Enabled reports whether both halves of the key pair are configured
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type App struct {
	Port                int       `yaml:"port"`
	TLS                 TLSConfig `yaml:"tls,omitempty"`
	ReadTimeoutSecs     int       `yaml:"read_timeout_secs,omitempty"`
	WriteTimeoutSecs    int       `yaml:"write_timeout_secs,omitempty"`
	ShutdownTimeoutSecs int       `yaml:"shutdown_timeout_secs,omitempty"`
}

type LoggingConfig struct {
	Level       string   `yaml:"level"`
	OutputPaths []string `yaml:"output_paths"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAgeSecs     int      `yaml:"max_age_secs,omitempty"`
}

type SolverConfig struct {
	OpeningGuesses []string `yaml:"opening_guesses,omitempty"`
	TopK           int      `yaml:"top_k,omitempty"`
	SampleFloor    int      `yaml:"sample_floor,omitempty"`
	SampleDivisor  int      `yaml:"sample_divisor,omitempty"`
	Workers        int      `yaml:"workers,omitempty"`

	// MissingWeight is nil when unset; 0 is a valid explicit value
	MissingWeight *float64 `yaml:"missing_weight,omitempty"`
}

type DictionaryConfig struct {
	Source      string `yaml:"source"`
	WordsPath   string `yaml:"words_path,omitempty"`
	WeightsPath string `yaml:"weights_path,omitempty"`
	// Name selects the MySQL table <name>_words
	Name string `yaml:"name,omitempty"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type Config struct {
	App        App              `yaml:"app"`
	Logging    LoggingConfig    `yaml:"logging"`
	CORS       CORSConfig       `yaml:"cors"`
	Solver     SolverConfig     `yaml:"solver"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	MySQL      MySQLConfig      `yaml:"mysql"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads the app config, expands environment variables, applies
// defaults and validates the result
func LoadConfig(appConfigPath string) (*Config, error) {
	if _, err := os.Stat(appConfigPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("app config file does not exist: %s", appConfigPath)
	}

	data, err := os.ReadFile(appConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", appConfigPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars substitutes ${VAR}, ${VAR:-default} and $VAR. An unset $VAR
// is left untouched; an unset ${VAR} becomes empty.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		if m[4] != "" {
			if v, ok := os.LookupEnv(m[4]); ok {
				return v
			}
			return match
		}
		if v, ok := os.LookupEnv(m[1]); ok && v != "" {
			return v
		}
		if m[2] != "" {
			return m[3]
		}
		return ""
	})
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.ReadTimeoutSecs == 0 {
		c.App.ReadTimeoutSecs = 10
	}
	if c.App.WriteTimeoutSecs == 0 {
		c.App.WriteTimeoutSecs = 60
	}
	if c.App.ShutdownTimeoutSecs == 0 {
		c.App.ShutdownTimeoutSecs = 15
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if len(c.Logging.OutputPaths) == 0 {
		c.Logging.OutputPaths = []string{"stdout"}
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if c.Dictionary.Source == "" {
		c.Dictionary.Source = SourceFile
	}
	if c.Dictionary.Source == SourceFile && c.Dictionary.WordsPath == "" {
		c.Dictionary.WordsPath = "data/words.txt"
	}
	if c.Dictionary.Name == "" {
		c.Dictionary.Name = "wordle"
	}
	if c.MySQL.Port == 0 {
		c.MySQL.Port = 3306
	}
}

func (c *Config) validate() error {
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("app.port %d out of range", c.App.Port)
	}
	if (c.App.TLS.CertFile == "") != (c.App.TLS.KeyFile == "") {
		return fmt.Errorf("app.tls requires both cert_file and key_file")
	}
	switch c.Dictionary.Source {
	case SourceFile:
	case SourceMySQL:
		if c.MySQL.Host == "" || c.MySQL.Database == "" {
			return fmt.Errorf("dictionary.source is mysql but mysql.host or mysql.database is not set")
		}
	default:
		return fmt.Errorf("unknown dictionary.source %q", c.Dictionary.Source)
	}
	if w := c.Solver.MissingWeight; w != nil && (*w < 0 || math.IsNaN(*w) || math.IsInf(*w, 0)) {
		return fmt.Errorf("solver.missing_weight must be finite and non-negative")
	}
	return nil
}
