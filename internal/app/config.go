package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/utils"
)

type Config struct {
	ServiceName    string   `yaml:"service_name"`
	Environment    string   `yaml:"environment"`
	Version        string   `yaml:"version"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadConfig reads configuration from the environment, with an optional
// YAML file override pointed at by RECIPES_CONFIG_FILE.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		ServiceName: utils.GetEnv("SERVICE_NAME", "recipe-backend", log),
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
		Port:        utils.GetEnvAsInt("PORT", 8080, log),
	}
	if origins := utils.GetEnv("ALLOWED_ORIGINS", "", log); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	configFile := utils.GetEnv("RECIPES_CONFIG_FILE", "", log)
	if configFile == "" {
		return cfg
	}
	raw, err := os.ReadFile(configFile)
	if err != nil {
		log.Warn("Config file unreadable, using environment values", "path", configFile, "error", err)
		return cfg
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Warn("Config file malformed, using environment values", "path", configFile, "error", err)
	}
	return cfg
}
