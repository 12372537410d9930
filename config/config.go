// Package config exposes the process configuration for GeriSafe: embedded
// name/version metadata and environment-sourced settings (secrets, paths,
// mail transport). Runtime-editable server knobs live in the settings table.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gerisafe/util/random"
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

// SMTP holds the outbound mail transport credentials used for
// registration-confirmation email.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

var (
	secretOnce sync.Once
	secret     string
)

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
	logLevel := os.Getenv("GERISAFE_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("GERISAFE_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("GERISAFE_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/gerisafe"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("GERISAFE_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetSecret returns the key used to sign confirmation tokens and session
// cookies. When GERISAFE_SECRET is unset a random key is generated once per
// process; tokens and sessions then do not survive a restart.
func GetSecret() string {
	secretOnce.Do(func() {
		secret = os.Getenv("GERISAFE_SECRET")
		if secret == "" {
			secret = random.Seq(32)
		}
	})
	return secret
}

// HasSecretEnv reports whether the signing key was supplied by the
// environment rather than generated.
func HasSecretEnv() bool {
	return os.Getenv("GERISAFE_SECRET") != ""
}

func GetSMTP() SMTP {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("GERISAFE_SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	username := os.Getenv("GERISAFE_SMTP_USERNAME")
	from := os.Getenv("GERISAFE_SMTP_FROM")
	if from == "" {
		from = username
	}
	return SMTP{
		Host:     os.Getenv("GERISAFE_SMTP_HOST"),
		Port:     port,
		Username: username,
		Password: os.Getenv("GERISAFE_SMTP_PASSWORD"),
		From:     from,
	}
}
