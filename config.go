package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"os"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string         `yaml:"git_commit" envconfig:"TBM_GIT_COMMIT"`
	GitTag             string         `yaml:"git_tag" envconfig:"TBM_GIT_TAG"`
	BuildTime          string         `yaml:"build_time" envconfig:"TBM_BUILD_TIME"`
	IsProduction       bool           `yaml:"is_production" envconfig:"TBM_IS_PRODUCTION"`
	LogLevel           zapcore.Level  `yaml:"log_level" envconfig:"TBM_LOG_LEVEL"`
	LogFolder          string         `yaml:"log_folder" envconfig:"TBM_LOG_FOLDER"`
	LogMaxSize         int            `yaml:"log_max_size" envconfig:"TBM_LOG_MAX_SIZE"`
	OpsEndpointsEnable bool           `yaml:"ops_endpoints_enable" envconfig:"TBM_OPS_ENDPOINTS_ENABLE"`
	Server             ServerConfig   `yaml:"server"`
	Database           DatabaseConfig `yaml:"database"`
	Auth               AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"TBM_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"TBM_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"TBM_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"TBM_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"TBM_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"TBM_SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	FilePath string `yaml:"filepath" envconfig:"TBM_DATABASE_FILE_PATH"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret" envconfig:"TBM_AUTH_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" envconfig:"TBM_AUTH_TOKEN_TTL"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Database.FilePath) == 0 {
		return errors.New("make sure to set a valid database file path in configuration file")
	}

	if len(config.Auth.Secret) == 0 {
		return errors.New("make sure to set the token signing secret in configuration")
	}

	if config.Auth.TokenTTL == 0 {
		config.Auth.TokenTTL = time.Hour
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `TBM`.
	err = LoadConfigEnvs("TBM", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
