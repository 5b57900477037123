// Package logging 配置全局 zerolog
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel 不认识的级别按 info 处理
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup 设置全局级别和输出格式，写到 stdout
func Setup(level, format string) {
	SetupWriter(os.Stdout, level, format)
}

// SetupWriter json 或 APP_ENV=production 时输出 JSON，否则是 ConsoleWriter
func SetupWriter(w io.Writer, level, format string) {
	SetLevel(level)

	if strings.EqualFold(format, "json") || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// SetLevel 配置热更新时调用
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}
