package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/sunthewhat/certgen-api/common"
	"github.com/sunthewhat/certgen-api/common/util"
	"github.com/sunthewhat/certgen-api/type/shared"
	"gopkg.in/yaml.v3"
)

func LoadConfig() {
	config, err := Load(configPath())
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	common.Config = config
}

// Load reads a yaml config file, expanding ${VAR} references from the
// environment (and an optional .env file) before unmarshalling.
func Load(path string) (*shared.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env", "error", err)
	}

	config := new(shared.Config)

	yml, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}

	expanded := os.ExpandEnv(string(yml))

	if unmarshalErr := yaml.Unmarshal([]byte(expanded), config); unmarshalErr != nil {
		return nil, unmarshalErr
	}

	if validateErr := util.ValidateStruct(config); validateErr != nil {
		return nil, validateErr
	}

	return config, nil
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yml"
}
