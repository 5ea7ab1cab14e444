// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	NLU     NLUConfig     `mapstructure:"nlu"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// NLUConfig holds settings for the detection and parsing pipeline.
type NLUConfig struct {
	Lexicon   LexiconConfig   `mapstructure:"lexicon"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Parser    ParserConfig    `mapstructure:"parser"`
}

// LexiconConfig points at an optional vocabulary registry file. An empty
// path means the built-in vocabulary is used unchanged.
type LexiconConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
}

// ExtractorConfig carries the per-field confidence weights.
type ExtractorConfig struct {
	TitleWeight     float64 `mapstructure:"title_weight"`
	AuthorWeight    float64 `mapstructure:"author_weight"`
	PriceWeight     float64 `mapstructure:"price_weight"`
	QuantityWeight  float64 `mapstructure:"quantity_weight"`
	LocationWeight  float64 `mapstructure:"location_weight"`
	ConditionWeight float64 `mapstructure:"condition_weight"`
}

// ParserConfig carries response-parser tunables.
type ParserConfig struct {
	MinFieldLength int `mapstructure:"min_field_length"`
}

// CacheConfig holds settings for the optional parse-result cache.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // seconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
