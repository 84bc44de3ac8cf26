package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultConfigPath = "config.toml"

// bootstrapEnv is processed before Load: it resolves which TOML file to
// read, separately from the `env:"..."` overlay Load itself applies
// once a Config struct exists to overlay onto.
//
// Grounded on the teacher's config.New: godotenv.Load(".env") from the
// working directory followed by envconfig.Process against a narrow
// struct, ahead of the real config parse.
type bootstrapEnv struct {
	ConfigPath string `envconfig:"CONFIG_PATH"`
}

// ResolveConfigPath determines the TOML config path to load: argOverride
// (typically os.Args[1]) wins if given, otherwise CONNECTOR_CONFIG_PATH
// from the environment (loaded from a .env file in the working
// directory when present), otherwise defaultConfigPath.
func ResolveConfigPath(argOverride string) (string, error) {
	if argOverride != "" {
		return argOverride, nil
	}

	if root, err := os.Getwd(); err == nil {
		_ = godotenv.Load(filepath.Join(root, ".env"))
	}

	var boot bootstrapEnv
	if err := envconfig.Process("CONNECTOR", &boot); err != nil {
		return "", err
	}
	if boot.ConfigPath != "" {
		return boot.ConfigPath, nil
	}
	return defaultConfigPath, nil
}
