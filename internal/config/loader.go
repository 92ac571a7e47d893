package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigLoader loads a Config from an optional YAML file overlaid with
// FIXSIM_-prefixed environment variables.
type ConfigLoader struct {
	configPath string
	envPrefix  string
	viper      *viper.Viper
}

// NewConfigLoader creates a loader. configPath may be empty, in which case
// the current directory and ./configs are searched for fixengine.yaml; envPrefix
// defaults to "FIXSIM" if empty.
func NewConfigLoader(configPath, envPrefix string) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = "FIXSIM"
	}
	return &ConfigLoader{
		configPath: configPath,
		envPrefix:  envPrefix,
		viper:      viper.New(),
	}
}

// LoadConfig builds a Config from defaults, an optional config file, and
// environment overrides, in that order of increasing precedence.
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	cl.viper.SetConfigType("yaml")
	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.AutomaticEnv()
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cl.bindEnvVars()
	cl.setDefaults()

	if err := cl.loadConfigFile(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := cl.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cl.validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	setGlobal(&cfg)
	return &cfg, nil
}

func (cl *ConfigLoader) loadConfigFile() error {
	if cl.configPath != "" {
		cl.viper.SetConfigFile(cl.configPath)
		return cl.viper.ReadInConfig()
	}
	cl.viper.SetConfigName("fixengine")
	cl.viper.AddConfigPath(".")
	cl.viper.AddConfigPath("./configs")
	return cl.viper.ReadInConfig()
}

func (cl *ConfigLoader) bindEnvVars() {
	_ = cl.viper.BindEnv("app.name", "FIXSIM_APP_NAME")
	_ = cl.viper.BindEnv("app.environment", "FIXSIM_APP_ENVIRONMENT")

	_ = cl.viper.BindEnv("server.listen_addr", "FIXSIM_SERVER_LISTEN_ADDR")
	_ = cl.viper.BindEnv("server.worker_threads", "FIXSIM_SERVER_WORKER_THREADS")
	_ = cl.viper.BindEnv("server.pin_cores", "FIXSIM_SERVER_PIN_CORES")
	_ = cl.viper.BindEnv("server.sender_comp_id", "FIXSIM_SERVER_SENDER_COMP_ID")

	_ = cl.viper.BindEnv("client.server_addr", "FIXSIM_CLIENT_SERVER_ADDR")
	_ = cl.viper.BindEnv("client.sender_comp_id", "FIXSIM_CLIENT_SENDER_COMP_ID")
	_ = cl.viper.BindEnv("client.target_comp_id", "FIXSIM_CLIENT_TARGET_COMP_ID")

	_ = cl.viper.BindEnv("benchmark.concurrency", "FIXSIM_BENCHMARK_CONCURRENCY")
	_ = cl.viper.BindEnv("benchmark.num_orders", "FIXSIM_BENCHMARK_NUM_ORDERS")
	_ = cl.viper.BindEnv("benchmark.rate_limit", "FIXSIM_BENCHMARK_RATE_LIMIT")

	_ = cl.viper.BindEnv("log.level", "FIXSIM_LOG_LEVEL")
	_ = cl.viper.BindEnv("log.format", "FIXSIM_LOG_FORMAT")
	_ = cl.viper.BindEnv("log.output", "FIXSIM_LOG_OUTPUT")
	_ = cl.viper.BindEnv("log.file_path", "FIXSIM_LOG_FILE_PATH")
}

func (cl *ConfigLoader) setDefaults() {
	cl.viper.SetDefault("app.name", "fixengine")
	cl.viper.SetDefault("app.environment", "development")

	cl.viper.SetDefault("server.listen_addr", "0.0.0.0:9878")
	cl.viper.SetDefault("server.worker_threads", 4)
	cl.viper.SetDefault("server.pin_cores", false)
	cl.viper.SetDefault("server.shutdown_drain", "5s")
	cl.viper.SetDefault("server.sender_comp_id", "FIXSIM")

	cl.viper.SetDefault("client.server_addr", "127.0.0.1:9878")
	cl.viper.SetDefault("client.sender_comp_id", "CLIENT1")
	cl.viper.SetDefault("client.target_comp_id", "FIXSIM")
	cl.viper.SetDefault("client.num_orders", 1)

	cl.viper.SetDefault("benchmark.concurrency", 10)
	cl.viper.SetDefault("benchmark.num_orders", 1000)
	cl.viper.SetDefault("benchmark.rate_limit", 0)

	cl.viper.SetDefault("log.level", "info")
	cl.viper.SetDefault("log.format", "text")
	cl.viper.SetDefault("log.output", "stdout")
	cl.viper.SetDefault("log.file_path", "./logs/fixengine.log")
	cl.viper.SetDefault("log.max_size_mb", 100)
	cl.viper.SetDefault("log.max_backups", 3)
	cl.viper.SetDefault("log.max_age_days", 28)
	cl.viper.SetDefault("log.compress", true)
}

func (cl *ConfigLoader) validateConfig(cfg *Config) error {
	if cfg.Server.WorkerThreads <= 0 {
		return fmt.Errorf("server.worker_threads must be positive, got %d", cfg.Server.WorkerThreads)
	}
	if cfg.Log.Output == "file" && cfg.Log.FilePath == "" {
		return fmt.Errorf("log.file_path is required when log.output is \"file\"")
	}
	if cfg.Log.Output == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.FilePath), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	return nil
}

// LoadConfigFromFile loads a Config from a specific YAML file path.
func LoadConfigFromFile(configFile string) (*Config, error) {
	return NewConfigLoader(configFile, "FIXSIM").LoadConfig()
}
