// Package config exposes the panel's runtime settings. Every value is read
// from the environment (optionally seeded from a .env file) with a default.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// LoadEnv seeds the process environment from the given .env files. Variables
// already set in the environment win. A missing default .env is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	}
	return godotenv.Load(files...)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("SUKET_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("SUKET_DEBUG") == "true"
}

func GetLogFolder() string {
	return getString("SUKET_LOG_FOLDER", "log")
}

func GetListen() string {
	return getString("SUKET_LISTEN", "")
}

func GetPort() int {
	return getInt("SUKET_PORT", 3000)
}

// GetWebDomain, when set, is the only Host the server answers to.
func GetWebDomain() string {
	return os.Getenv("SUKET_DOMAIN")
}

// GetCertFile and GetKeyFile enable HTTPS when both are set.
func GetCertFile() string {
	return os.Getenv("SUKET_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("SUKET_KEY_FILE")
}

// GetSessionSecret returns the key used to authenticate session cookies.
// An empty value makes the server generate a random key at start, which
// logs everybody out on restart.
func GetSessionSecret() string {
	return os.Getenv("SUKET_SESSION_SECRET")
}

// GetSessionMaxAge is the session cookie lifetime in minutes. Zero keeps the
// cookie for the browser session.
func GetSessionMaxAge() int {
	return getInt("SUKET_SESSION_MAX_AGE", 0)
}

func GetUsersFile() string {
	return os.Getenv("SUKET_USERS_FILE")
}

func GetSheetsCredentialsFile() string {
	return getString("SUKET_SHEETS_CREDENTIALS", "credentials.json")
}

func GetSpreadsheetID() string {
	return os.Getenv("SUKET_SPREADSHEET_ID")
}

func GetSheetRange() string {
	return getString("SUKET_SHEET_RANGE", "Database!A:F")
}

func GetFetchTimeout() time.Duration {
	return getDuration("SUKET_FETCH_TIMEOUT", 15*time.Second)
}

// GetRecordsFile points at a TOML file of records served instead of the
// spreadsheet. Used for offline runs.
func GetRecordsFile() string {
	return os.Getenv("SUKET_RECORDS_FILE")
}

func GetTemplatePath() string {
	return getString("SUKET_TEMPLATE", "public/template.pdf")
}

func GetOutputDir() string {
	return getString("SUKET_OUTPUT_DIR", "surat_keterangan")
}

// GetCertificateRetention is how long generated certificates are kept on
// disk. Zero disables pruning.
func GetCertificateRetention() time.Duration {
	return getDuration("SUKET_CERT_RETENTION", 24*time.Hour)
}

func GetDefaultLang() string {
	return getString("SUKET_LANG", "id")
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
