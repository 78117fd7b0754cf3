package config

import (
	"fmt"
	"path/filepath"

	"github.com/subosito/gotenv"
)

const ENV_DIR = "config/envs"

// LoadEnv loads ENV_DIR/.env.<env> into the process environment. Variables
// that are already set win over the file. A missing file wraps
// fs.ErrNotExist so the caller can carry on with the OS environment.
func LoadEnv(env string) error {
	return LoadEnvFrom(ENV_DIR, env)
}

func LoadEnvFrom(dir, env string) error {
	if env == "" {
		env = "dev"
	}

	envFile := filepath.Join(dir, ".env."+env)
	if err := gotenv.Load(envFile); err != nil {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return nil
}
