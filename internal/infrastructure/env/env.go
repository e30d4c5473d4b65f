package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"paradigm-agent/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.ConfigPort = (*EnvService)(nil)

type EnvService struct{}

// NewEnvService loads .env and then .env.{APP_ENV} from the working directory.
func NewEnvService(logger output.LoggerPort) *EnvService {
	return Load(".", logger)
}

func Load(dir string, logger output.LoggerPort) *EnvService {
	appEnv := os.Getenv("APP_ENV")
	explicit := appEnv != ""
	if !explicit {
		appEnv = "dev"
	}

	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil {
		logger.Debug("No .env file found", "dir", dir)
	}

	envFile := filepath.Join(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(envFile); err != nil {
		if explicit {
			logger.Warn("Could not load env file", "file", envFile, "error", err)
		} else {
			logger.Debug("Could not load env file", "file", envFile, "error", err)
		}
	}

	logger.Debug("Environment loaded", "APP_ENV", appEnv)

	return &EnvService{}
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("ENV %s is missing", key))
	}
	return val
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
