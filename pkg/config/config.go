package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// New loads a typed config struct from the environment. A local .env file is
// applied first when present so development runs work without exported vars.
func New[T any](prefix string) (*T, error) {
	if err := loadEnvFileIfExists(".env"); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// ExportFile reads a YAML/TOML/env config file and exports every setting into
// the process environment (upper-cased keys), so the envconfig structs pick
// them up. Explicit environment variables still win because Setenv is only
// called for keys read from the file.
func ExportFile(filepath string) error {
	if strings.TrimSpace(filepath) == "" {
		return nil
	}
	viper.SetConfigFile(filepath)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	for k, v := range viper.AllSettings() {
		key := strings.ToUpper(strings.ReplaceAll(k, ".", "_"))
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(v)); err != nil {
			return err
		}
	}

	return nil
}

func loadEnvFileIfExists(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return godotenv.Load(filepath)
}
