// Package config provides configuration management for dockr
package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/trly/dockr/internal/catalog"
	"github.com/trly/dockr/internal/service"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() (*Settings, error)
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg        *Settings
	configFile string
}

// NewDefaultConfigProvider creates a provider with no settings loaded.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

// NewConfigProvider creates a provider and loads settings from viper.
func NewConfigProvider() Provider {
	p := &defaultConfigProvider{}
	if _, err := p.InitConfig(); err != nil {
		p.cfg = defaultSettings()
	}
	return p
}

var defaultProvider = NewDefaultConfigProvider()

// Default configuration values for dockr.
const (
	DefaultListenAddr      = "127.0.0.1:8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPreset          = "node"
	DefaultGeneratorName   = "dockr"
	DefaultVerbose         = false
	DefaultOutputFormat    = "text"
	EnvPrefix              = "DOCKR"
)

// Settings represents the configuration for dockr.
type Settings struct {
	ListenAddr      string                    `yaml:"listenAddr"`
	ShutdownTimeout time.Duration             `yaml:"shutdownTimeout"`
	DefaultPreset   string                    `yaml:"defaultPreset"`
	GeneratorName   string                    `yaml:"generatorName"`
	OutputFormat    string                    `yaml:"outputFormat"`
	Verbose         bool                      `yaml:"verbose"`
	Presets         map[string]service.Preset `yaml:"presets,omitempty"`
	Catalog         catalog.Vars              `yaml:"catalog,omitempty"`
}

func defaultSettings() *Settings {
	return &Settings{
		ListenAddr:      DefaultListenAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		DefaultPreset:   DefaultPreset,
		GeneratorName:   DefaultGeneratorName,
		OutputFormat:    DefaultOutputFormat,
		Verbose:         DefaultVerbose,
	}
}

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	p.configFile = path
}

func (p *defaultConfigProvider) InitConfig() (*Settings, error) {
	cfg, err := initConfigInternal(p.configFile)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	return p.cfg, nil
}

// SetConfig sets the application configuration.
func SetConfig(c *Settings) {
	defaultProvider.SetConfig(c)
}

// GetConfig returns the current application configuration.
func GetConfig() *Settings {
	return defaultProvider.GetConfig()
}

// SetConfigFilePath sets the configuration file path.
func SetConfigFilePath(p string) {
	defaultProvider.SetConfigFilePath(p)
}

// InitConfig initializes the application configuration.
func InitConfig() (*Settings, error) {
	return defaultProvider.InitConfig()
}

// DefaultProvider returns the process-wide provider.
func DefaultProvider() Provider {
	return defaultProvider
}

func initConfigInternal(configFile string) (*Settings, error) {
	cfg := defaultSettings()

	viper.SetDefault("listenAddr", DefaultListenAddr)
	viper.SetDefault("shutdownTimeout", DefaultShutdownTimeout)
	viper.SetDefault("defaultPreset", DefaultPreset)
	viper.SetDefault("generatorName", DefaultGeneratorName)
	viper.SetDefault("outputFormat", DefaultOutputFormat)
	viper.SetDefault("verbose", DefaultVerbose)

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(os.ExpandEnv("$HOME/.config/dockr"))
		viper.AddConfigPath("/etc/dockr")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
