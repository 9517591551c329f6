package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ObjectStoreNone       = "none"
	ObjectStoreCloudinary = "cloudinary"
	ObjectStoreS3         = "s3"
)

type Config struct {
	Env                string `mapstructure:"ENV"`
	Addr               int    `mapstructure:"ADDR"`
	DBConn             string `mapstructure:"DB_CONN"`
	SessionSecret      string `mapstructure:"SESSION_SECRET"`
	StoreSecure        bool   `mapstructure:"STORE_SECURE"`
	Host               string `mapstructure:"HOST"`
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	ObjectStore        string `mapstructure:"OBJECT_STORE"`
	CloudinaryCloud    string `mapstructure:"CLOUDINARY_CLOUD"`
	CloudinaryKey      string `mapstructure:"CLOUDINARY_KEY"`
	CloudinarySecret   string `mapstructure:"CLOUDINARY_SECRET"`
	S3Bucket           string `mapstructure:"S3_BUCKET"`
	S3Region           string `mapstructure:"S3_REGION"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
}

var keys = []string{
	"ENV", "ADDR", "DB_CONN", "SESSION_SECRET", "STORE_SECURE", "HOST",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "OBJECT_STORE",
	"CLOUDINARY_CLOUD", "CLOUDINARY_KEY", "CLOUDINARY_SECRET",
	"S3_BUCKET", "S3_REGION", "LOG_LEVEL",
}

// Load reads an optional dotenv file, then the process environment. A missing
// file is not an error; variables already set in the environment win.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("ENV", "dev")
	v.SetDefault("ADDR", 8080)
	v.SetDefault("HOST", "http://localhost:8080")
	v.SetDefault("OBJECT_STORE", ObjectStoreNone)
	v.SetDefault("S3_REGION", "us-west-2")
	v.SetDefault("LOG_LEVEL", "info")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string

	if c.DBConn == "" {
		missing = append(missing, "DB_CONN")
	}

	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if c.Env != "dev" && c.Env != "prod" {
		return fmt.Errorf("environment can only be dev or prod")
	}

	switch c.ObjectStore {
	case ObjectStoreNone:
	case ObjectStoreCloudinary:
		if c.CloudinaryCloud == "" || c.CloudinaryKey == "" || c.CloudinarySecret == "" {
			return fmt.Errorf("cloudinary object store needs CLOUDINARY_CLOUD, CLOUDINARY_KEY and CLOUDINARY_SECRET")
		}
	case ObjectStoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 object store needs S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown object store %q", c.ObjectStore)
	}

	return nil
}

func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
