package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds the portal client's settings. The only required external
	// input is the API base URL; everything else has a sane default.
	Config struct {
		Debug        bool
		TestMode     bool
		Env          string
		AppName      string
		Build        string
		RollbarToken string

		API     APIConfig
		Storage StorageConfig
		Upload  UploadConfig
	}

	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	StorageConfig struct {
		// Dir is where the session (token + user profile) is persisted.
		Dir string
	}

	UploadConfig struct {
		MaxPhotoSize int64
	}
)

// NewConfig loads the configuration from config/.env.<env> (if present) and
// the environment, with defaults suitable for local development.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Umoja Portal")
	conf.SetDefault("apiBaseUrl", "http://localhost:8000")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("storageDir", defaultStorageDir())
	conf.SetDefault("maxPhotoSize", int64(5<<20))
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "dev")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL: strings.TrimRight(conf.GetString("apiBaseUrl"), "/"),
			Timeout: conf.GetDuration("apiTimeout"),
		},
		Storage: StorageConfig{
			Dir: conf.GetString("storageDir"),
		},
		Upload: UploadConfig{
			MaxPhotoSize: conf.GetInt64("maxPhotoSize"),
		},
	}
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "umoja-portal")
}
