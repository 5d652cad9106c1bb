package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/masking"
)

const validINI = `[GOOGLE]
SERVICE_ACCOUNT_FILE = /secrets/service-account.json
ADMIN_USER_EMAIL = admin@school.example

[DATABASE]
PATH = data/classroom.db

[SETTINGS]
PII_MASKING_LEVEL = Students_Only
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadReadsINIFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validINI))
	require.NoError(t, err)

	require.Equal(t, "/secrets/service-account.json", cfg.ServiceAccountFile)
	require.Equal(t, "admin@school.example", cfg.AdminUserEmail)
	require.Equal(t, "data/classroom.db", cfg.DatabasePath)
	require.Equal(t, masking.LevelStudentsOnly, cfg.MaskingLevel)
	require.Equal(t, "classroom", cfg.EventChannel)
	require.Equal(t, 2*time.Hour, cfg.LockTTL)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadDefaultsMaskingLevelToNone(t *testing.T) {
	content := `[GOOGLE]
SERVICE_ACCOUNT_FILE = sa.json
ADMIN_USER_EMAIL = admin@school.example

[DATABASE]
PATH = classroom.db
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.Equal(t, masking.LevelNone, cfg.MaskingLevel)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("CLASSROOM_DATABASE_PATH", "/var/lib/classroom/override.db")
	t.Setenv("CLASSROOM_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(writeConfig(t, validINI))
	require.NoError(t, err)
	require.Equal(t, "/var/lib/classroom/override.db", cfg.DatabasePath)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	require.Contains(t, err.Error(), "configuration file not found")
}

func TestLoadMissingRequiredKey(t *testing.T) {
	content := `[GOOGLE]
SERVICE_ACCOUNT_FILE = sa.json
ADMIN_USER_EMAIL = admin@school.example

[DATABASE]
PATH =
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	require.Contains(t, err.Error(), "database.path")
}

func TestLoadRejectsUnknownMaskingLevel(t *testing.T) {
	content := strings.Replace(validINI, "Students_Only", "partial", 1)

	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	require.Contains(t, err.Error(), "partial")
	require.Contains(t, err.Error(), "settings.pii_masking_level")
}
