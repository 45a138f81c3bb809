package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	env_utils "vendors-backend/internal/util/env"
	"vendors-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting bool

	EnvMode        env_utils.EnvMode        `env:"ENV_MODE"        env-default:"development"`
	DatabaseDriver env_utils.DatabaseDriver `env:"DATABASE_DRIVER" env-default:"postgres"`
	DatabaseDsn    string                   `env:"DATABASE_DSN"`
	DbMaxOpenConns int                      `env:"DB_MAX_OPEN_CONNS" env-default:"25"`

	HTTPPort string `env:"HTTP_PORT" env-default:"4005"`

	// Base used to build vendor permalinks, without trailing slash
	PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:4005"`

	AdminEmail    string `env:"ADMIN_EMAIL"    env-default:"admin@localhost"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Roles appended to the built-in vendor role catalog. They carry no
	// capabilities.
	VendorExtraRoles []string `env:"VENDOR_EXTRA_ROLES" env-separator:","`

	DataFolder    string
	SecretKeyPath string
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.IsTesting = testing.Testing()

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded && !env.IsTesting {
		log.Warn("could not find .env in any location, using process environment only")
	}

	isTesting := env.IsTesting
	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}
	env.IsTesting = isTesting

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if !env.DatabaseDriver.IsValid() {
		log.Error("DATABASE_DRIVER is invalid", "driver", env.DatabaseDriver)
		os.Exit(1)
	}

	env.DataFolder = filepath.Join(filepath.Dir(backendRoot), "vendors-data")
	env.SecretKeyPath = filepath.Join(env.DataFolder, "secret.key")
	env.PublicBaseURL = strings.TrimRight(env.PublicBaseURL, "/")

	if env.IsTesting {
		applyTestingDefaults(&env)
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	log.Info(
		"Environment variables loaded successfully!",
		"mode", env.EnvMode,
		"databaseDriver", env.DatabaseDriver,
	)
}

// Tests run against a throwaway sqlite file per test binary unless a
// database is configured explicitly.
func applyTestingDefaults(env *EnvVariables) {
	testFolder := filepath.Join(os.TempDir(), "vendors-backend-test")

	env.SecretKeyPath = filepath.Join(testFolder, "secret.key")
	env.DataFolder = testFolder

	if env.DatabaseDsn != "" {
		return
	}

	env.DatabaseDriver = env_utils.DatabaseDriverSqlite
	env.DatabaseDsn = filepath.Join(testFolder, fmt.Sprintf("test-%d.db", os.Getpid()))
}
