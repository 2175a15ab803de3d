package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "FINNEWS_CONFIG"
	outputPathEnv = "FINNEWS_OUTPUT"
	logLevelEnv   = "FINNEWS_LOG_LEVEL"
)

// Config holds the ambient settings of a run. The crawl itself (date
// window, keyword list, site registry, timeouts) is fixed at compile time
// and deliberately not configurable here.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig selects console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig names where the aggregated records are written; "-" means
// stdout.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(outputPathEnv); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Path: "articles.json"},
	}
}
