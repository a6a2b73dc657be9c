package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears k for the duration of the test
func unsetEnv(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "")
	os.Unsetenv(k)
}

func TestExpandEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "Simple ${VAR} syntax",
			input:    "path: ${WORDS_DIR}/words.txt",
			envVars:  map[string]string{"WORDS_DIR": "/srv/wordle"},
			expected: "path: /srv/wordle/words.txt",
		},
		{
			name:     "Simple $VAR syntax",
			input:    "path: $WORDS_DIR/words.txt",
			envVars:  map[string]string{"WORDS_DIR": "/srv/wordle"},
			expected: "path: /srv/wordle/words.txt",
		},
		{
			name:     "${VAR:-default} with env set",
			input:    "host: ${MYSQL_HOST:-localhost}",
			envVars:  map[string]string{"MYSQL_HOST": "db.internal"},
			expected: "host: db.internal",
		},
		{
			name:     "${VAR:-default} with env not set",
			input:    "host: ${MYSQL_HOST:-localhost}",
			expected: "host: localhost",
		},
		{
			name:     "Multiple variables",
			input:    "dsn: ${MYSQL_USER}@${MYSQL_HOST}:${MYSQL_PORT}",
			envVars:  map[string]string{"MYSQL_USER": "wordle", "MYSQL_HOST": "localhost", "MYSQL_PORT": "3306"},
			expected: "dsn: wordle@localhost:3306",
		},
		{
			name:     "Mixed syntax",
			input:    "$MYSQL_USER reads ${WORDS_DIR:-/tmp}",
			envVars:  map[string]string{"MYSQL_USER": "alice", "WORDS_DIR": "/home/alice"},
			expected: "alice reads /home/alice",
		},
		{
			name:     "Undefined variable without default (${VAR})",
			input:    "path: ${UNDEFINED_VAR}",
			expected: "path: ",
		},
		{
			name:     "Undefined variable without default ($VAR)",
			input:    "path: $UNDEFINED_VAR",
			expected: "path: $UNDEFINED_VAR",
		},
		{
			name:     "Empty default value",
			input:    "path: ${EMPTY:-}",
			expected: "path: ",
		},
		{
			name:     "No variables",
			input:    "path: /static/path",
			expected: "path: /static/path",
		},
	}

	names := []string{"WORDS_DIR", "MYSQL_HOST", "MYSQL_USER", "MYSQL_PORT", "UNDEFINED_VAR", "EMPTY"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range names {
				unsetEnv(t, k)
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("app:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.False(t, cfg.App.TLS.Enabled())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"stdout"}, cfg.Logging.OutputPaths)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, SourceFile, cfg.Dictionary.Source)
	assert.Equal(t, "data/words.txt", cfg.Dictionary.WordsPath)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Zero(t, cfg.Solver.TopK, "solver defaults are applied by the solver")
	assert.Nil(t, cfg.Solver.MissingWeight)
}

func TestParse_FullDocument(t *testing.T) {
	t.Setenv("WORDLE_DB_PASSWORD", "s3cret")
	doc := `
app:
  port: 8443
  tls:
    cert_file: /etc/wordle/cert.pem
    key_file: /etc/wordle/key.pem
logging:
  level: debug
  output_paths: [stdout, wordle.log]
cors:
  allowed_origins: ["https://wordle.example.com"]
solver:
  opening_guesses: [crane, slate]
  top_k: 3
  workers: 2
  missing_weight: 0.5
dictionary:
  source: mysql
  name: nyt
mysql:
  host: localhost
  username: wordle
  password: ${WORDLE_DB_PASSWORD}
  database: wordle
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.True(t, cfg.App.TLS.Enabled())
	assert.Equal(t, []string{"stdout", "wordle.log"}, cfg.Logging.OutputPaths)
	assert.Equal(t, []string{"https://wordle.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"crane", "slate"}, cfg.Solver.OpeningGuesses)
	assert.Equal(t, 3, cfg.Solver.TopK)
	require.NotNil(t, cfg.Solver.MissingWeight)
	assert.Equal(t, 0.5, *cfg.Solver.MissingWeight)
	assert.Equal(t, SourceMySQL, cfg.Dictionary.Source)
	assert.Empty(t, cfg.Dictionary.WordsPath)
	assert.Equal(t, "s3cret", cfg.MySQL.Password)
}

func TestParse_ZeroMissingWeightIsKept(t *testing.T) {
	cfg, err := Parse([]byte("solver:\n  missing_weight: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Solver.MissingWeight)
	assert.Equal(t, 0.0, *cfg.Solver.MissingWeight)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"port out of range", "app:\n  port: 70000\n"},
		{"half a key pair", "app:\n  tls:\n    cert_file: cert.pem\n"},
		{"unknown source", "dictionary:\n  source: redis\n"},
		{"mysql without host", "dictionary:\n  source: mysql\nmysql:\n  database: wordle\n"},
		{"negative missing weight", "solver:\n  missing_weight: -1\n"},
		{"not yaml", "app: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "does not exist")

	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 8081\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.App.Port)
}
