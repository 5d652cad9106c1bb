package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/masking"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "config.ini"

// Config holds the resolved settings of one extraction run. It is built once by
// Load and passed by value afterwards.
type Config struct {
	ServiceAccountFile string        `validate:"required"`
	AdminUserEmail     string        `validate:"required,email"`
	DatabasePath       string        `validate:"required"`
	MaskingLevel       masking.Level `validate:"required"`
	RedisURL           string
	NATSURL            string
	EventChannel       string
	LockTTL            time.Duration `validate:"gt=0"`
	PushgatewayURL     string
	LogLevel           string
}

// Load reads the INI file at path, applies CLASSROOM_* environment overrides and
// validates the result. Every failure is a configuration error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, apperrors.Configuration("configuration file not found at %q; copy config.ini.example to %q and fill in the values", path, path)
		}
		return Config{}, apperrors.Configuration("cannot access configuration file %q: %v", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	v.SetEnvPrefix("CLASSROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("settings.pii_masking_level", string(masking.LevelNone))
	v.SetDefault("events.channel", "classroom")
	v.SetDefault("lock.ttl", "2h")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, apperrors.Configuration("failed to parse %q: %v", path, err)
	}

	level, err := masking.ParseLevel(v.GetString("settings.pii_masking_level"))
	if err != nil {
		return Config{}, apperrors.Configuration("invalid value for %q in %q: %v", "settings.pii_masking_level", path, err)
	}

	lockTTL, err := time.ParseDuration(v.GetString("lock.ttl"))
	if err != nil {
		return Config{}, apperrors.Configuration("invalid lock ttl: %v", err)
	}

	cfg := Config{
		ServiceAccountFile: strings.TrimSpace(v.GetString("google.service_account_file")),
		AdminUserEmail:     strings.TrimSpace(v.GetString("google.admin_user_email")),
		DatabasePath:       strings.TrimSpace(v.GetString("database.path")),
		MaskingLevel:       level,
		RedisURL:           strings.TrimSpace(v.GetString("redis.url")),
		NATSURL:            strings.TrimSpace(v.GetString("nats.url")),
		EventChannel:       strings.TrimSpace(v.GetString("events.channel")),
		LockTTL:            lockTTL,
		PushgatewayURL:     strings.TrimSpace(v.GetString("metrics.pushgateway_url")),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
	}

	if err := validate(cfg, path); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func validate(cfg Config, path string) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Configuration("invalid configuration in %q: %v", path, err)
	}

	first := fieldErrs[0]
	key := keyFor(first.StructField())
	switch first.Tag() {
	case "required":
		return apperrors.Configuration("missing or empty required key %q in %q", key, path)
	default:
		return apperrors.Configuration("invalid value for %q in %q: failed %q check", key, path, first.Tag())
	}
}

func keyFor(field string) string {
	if key, ok := configFieldKeys[field]; ok {
		return key
	}
	return field
}

var configFieldKeys = map[string]string{
	"ServiceAccountFile": "google.service_account_file",
	"AdminUserEmail":     "google.admin_user_email",
	"DatabasePath":       "database.path",
	"MaskingLevel":       "settings.pii_masking_level",
	"LockTTL":            "lock.ttl",
}
