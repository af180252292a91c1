// Package gorm bridges gorm's query logging to zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks queries slower than this as warnings.
const DefaultSlowThreshold = 200 * time.Millisecond

// Config of the gorm logger adapter.
type Config struct {
	// SlowThreshold zero disables slow query warnings.
	SlowThreshold time.Duration

	// IgnoreRecordNotFoundError skips error logging for gorm.ErrRecordNotFound.
	IgnoreRecordNotFoundError bool

	// LogLevel of gorm itself, defaults to gormlogger.Warn.
	LogLevel gormlogger.LogLevel
}

// ConfigDefault is the default config used by New.
var ConfigDefault = Config{
	SlowThreshold:             DefaultSlowThreshold,
	IgnoreRecordNotFoundError: true,
	LogLevel:                  gormlogger.Warn,
}

// Logger implements gorm's logger.Interface on top of a zerolog.Logger.
type Logger struct {
	zl  zerolog.Logger
	cfg Config
}

// New creates a gorm logger writing to the global zerolog logger.
func New(config ...Config) *Logger {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
		if cfg.LogLevel == 0 {
			cfg.LogLevel = ConfigDefault.LogLevel
		}
	}

	return &Logger{
		zl:  log.Logger.With().Str("component", "gorm").Logger(),
		cfg: cfg,
	}
}

// WithLogger replaces the zerolog logger, mainly used by tests.
func (l *Logger) WithLogger(zl zerolog.Logger) *Logger {
	n := *l
	n.zl = zl

	return &n
}

// LogMode returns a copy with the given gorm log level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.cfg.LogLevel = level

	return &n
}

// Info logs gorm info messages.
func (l *Logger) Info(_ context.Context, msg string, data ...any) {
	if l.cfg.LogLevel >= gormlogger.Info {
		l.zl.Info().Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn logs gorm warnings.
func (l *Logger) Warn(_ context.Context, msg string, data ...any) {
	if l.cfg.LogLevel >= gormlogger.Warn {
		l.zl.Warn().Msg(fmt.Sprintf(msg, data...))
	}
}

// Error logs gorm errors.
func (l *Logger) Error(_ context.Context, msg string, data ...any) {
	if l.cfg.LogLevel >= gormlogger.Error {
		l.zl.Error().Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace logs a finished statement with its duration.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.cfg.LogLevel >= gormlogger.Error &&
		(!errors.Is(err, gorm.ErrRecordNotFound) || !l.cfg.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.zl.Error().Err(err).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("query failed")
	case l.cfg.SlowThreshold != 0 && elapsed > l.cfg.SlowThreshold && l.cfg.LogLevel >= gormlogger.Warn:
		sql, rows := fc()
		l.zl.Warn().
			Dur("elapsed", elapsed).
			Dur("threshold", l.cfg.SlowThreshold).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("slow query")
	case l.cfg.LogLevel == gormlogger.Info:
		sql, rows := fc()
		l.zl.Debug().
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("query")
	}
}
