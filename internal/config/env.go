package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nduc/bgm-player/internal/platform"
)

// Environment variables read as overrides
const (
	EnvDataDir  = "BGM_DATA_DIR"
	EnvLanguage = "BGM_LANGUAGE"

	DefaultEnvFile = ".env"
)

// Overrides are settings forced from the environment or a .env file
type Overrides struct {
	DataDir  string
	Language string
}

// LoadOverrides reads overrides from the process environment, falling back to
// the given .env files (DefaultEnvFile when none are given). Missing files are
// skipped.
func LoadOverrides(files ...string) (Overrides, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	var existing []string
	for _, f := range files {
		if platform.FileExists(f) {
			existing = append(existing, f)
		}
	}

	values := map[string]string{}
	if len(existing) > 0 {
		read, err := godotenv.Read(existing...)
		if err != nil {
			return Overrides{}, fmt.Errorf("failed to read env files: %w", err)
		}
		values = read
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return values[key]
	}

	return Overrides{
		DataDir:  lookup(EnvDataDir),
		Language: lookup(EnvLanguage),
	}, nil
}
