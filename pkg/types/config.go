package types

import "time"

// DefaultColumns is the ordered column list of the vocabulary mapping table.
var DefaultColumns = []string{
	"source_code",
	"source_concept_id",
	"source_code_description",
	"source_vocabulary_id",
	"source_domain_id",
	"source_concept_class_id",
	"target_concept_id",
	"target_concept_name",
	"target_vocabulary_id",
	"target_domain_id",
	"target_concept_class_id",
}

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "vocabsearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StoreConfig holds settings for the SQLite vocabulary store.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "data/vocab.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// Table is the name of the table searched and replaced on import (default "data").
	Table string `json:"table" yaml:"table"`

	// Columns is the ordered list of columns selected and matched by a search.
	// It also establishes the header order of rendered tables.
	Columns []string `json:"columns" yaml:"columns"`

	// Delimiter is the CSV field separator used on import (default '|').
	Delimiter string `json:"delimiter" yaml:"delimiter"`

	// MaxResults caps the rows returned by a search. Zero means no cap.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the web server.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// ResultTTL is how long a stored result set stays reachable by its search key.
	ResultTTL time.Duration `json:"result_ttl" yaml:"result_ttl"`

	// MaxStoredResults bounds the number of result sets held at once.
	MaxStoredResults uint64 `json:"max_stored_results" yaml:"max_stored_results"`

	// Gzip enables response compression.
	Gzip bool `json:"gzip" yaml:"gzip"`

	// RequestsPerSecond is the per-IP rate limit. Zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// ClientConfig holds settings for the results client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the server root, e.g. "http://localhost:8000".
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the number of retries on 429/503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// LogConfig selects logger level and output format.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// Config groups all component configurations.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
	Client ClientConfig `json:"client" yaml:"client"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// DefaultConfig returns the configuration used when no file, env or flag overrides a value.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			DBPath:    "data/vocab.db",
			Table:     "data",
			Columns:   append([]string(nil), DefaultColumns...),
			Delimiter: "|",
		},
		Server: ServerConfig{
			Addr:              ":8000",
			ResultTTL:         30 * time.Minute,
			MaxStoredResults:  1000,
			RequestsPerSecond: 20,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
		Client: ClientConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "vocabsearch/dev",
			},
			BaseURL:    "http://localhost:8000",
			MaxRetries: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
