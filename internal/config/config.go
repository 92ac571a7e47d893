// Package config loads fixengine's configuration from an optional YAML
// file overlaid with FIXSIM_-prefixed environment variables, falling back
// to built-in defaults so the binary runs standalone with CLI flags alone.
package config

// Config is the root configuration struct. Every section is a pointer so a
// caller can tell "not configured" apart from "configured to the zero
// value" before setDefaults runs.
type Config struct {
	App       *AppConfig       `mapstructure:"app" yaml:"app"`
	Server    *ServerConfig    `mapstructure:"server" yaml:"server"`
	Client    *ClientConfig    `mapstructure:"client" yaml:"client"`
	Benchmark *BenchmarkConfig `mapstructure:"benchmark" yaml:"benchmark"`
	Log       *LogConfig       `mapstructure:"log" yaml:"log"`
}

// AppConfig carries process-wide identity fields (service name and
// environment). The client's FIX SenderCompID/TargetCompID come from
// ClientConfig, not from these fields.
type AppConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

// ServerConfig configures the session-accepting listener.
type ServerConfig struct {
	ListenAddr    string `mapstructure:"listen_addr" yaml:"listen_addr"`
	WorkerThreads int    `mapstructure:"worker_threads" yaml:"worker_threads"`
	PinCores      bool   `mapstructure:"pin_cores" yaml:"pin_cores"`
	ShutdownDrain string `mapstructure:"shutdown_drain" yaml:"shutdown_drain"`
	SenderCompID  string `mapstructure:"sender_comp_id" yaml:"sender_comp_id"`
}

// ClientConfig configures the single-shot client driver.
type ClientConfig struct {
	ServerAddr   string `mapstructure:"server_addr" yaml:"server_addr"`
	SenderCompID string `mapstructure:"sender_comp_id" yaml:"sender_comp_id"`
	TargetCompID string `mapstructure:"target_comp_id" yaml:"target_comp_id"`
	NumOrders    int    `mapstructure:"num_orders" yaml:"num_orders"`
}

// BenchmarkConfig configures the multi-connection load-generating driver.
type BenchmarkConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	NumOrders   int `mapstructure:"num_orders" yaml:"num_orders"`
	RateLimit   int `mapstructure:"rate_limit" yaml:"rate_limit"` // orders/sec per connection, 0 = unlimited
}

// LogConfig configures the logrus-backed logger.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // "text" or "json"
	Output     string `mapstructure:"output" yaml:"output"` // "stdout", "stderr", or "file"
	FilePath   string `mapstructure:"file_path" yaml:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

var globalConfig *Config

// GetConfig returns the process-wide configuration singleton. It is nil
// until LoadConfig has been called once; the server, client and benchmark
// subcommands each call it when they start.
func GetConfig() *Config {
	return globalConfig
}

func setGlobal(cfg *Config) {
	globalConfig = cfg
}
