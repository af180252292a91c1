package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-wishlist/go-wishlist/internal/logger"
)

func TestLogger(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console enabled log level info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer disabled info expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console enabled trace level with caller expect json",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := testLoggerConfig(t, tc.cfg)

			if tc.shouldHaveOutPut {
				assert.NotEmpty(t, out, "expected log output")
			} else {
				assert.Empty(t, out, "expected no log output")
			}

			if !tc.outPutIsJSON {
				return
			}

			type line struct {
				Level   string `json:"level"`
				App     string `json:"app"`
				Message string `json:"message"`
			}

			for _, outLine := range strings.Split(out, "\n") {
				if outLine == "" {
					continue
				}

				var l line
				require.NoError(t, json.Unmarshal([]byte(outLine), &l), "expected json output but got: %s", outLine)
				assert.Equal(t, "test", l.App)
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     logger.Log
		wantErr error
	}{
		{
			name:    "missing service name",
			cfg:     logger.Log{LogLevel: "info", AppName: "test"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "test"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, logger.Init(tc.cfg), tc.wantErr)
		})
	}

	require.Error(t, logger.Init(logger.Log{LogLevel: "loud", AppName: "test", ServiceName: "test"}))
}

func TestLevelWriter(t *testing.T) {
	var info, warn, errs, trace bytes.Buffer

	lw := &logger.LevelWriter{
		ErrorWriter: &errs,
		InfoWriter:  &info,
		TraceWriter: &trace,
		WarnWriter:  &warn,
	}

	for level, msg := range map[zerolog.Level]string{
		zerolog.TraceLevel: "t",
		zerolog.DebugLevel: "d",
		zerolog.InfoLevel:  "i",
		zerolog.WarnLevel:  "w",
		zerolog.ErrorLevel: "e",
		zerolog.FatalLevel: "f",
	} {
		_, err := lw.WriteLevel(level, []byte(msg))
		require.NoError(t, err)
	}

	n, err := lw.WriteLevel(zerolog.Disabled, []byte("x"))
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, "t", trace.String())
	assert.Equal(t, "w", warn.String())
	assert.ElementsMatch(t, []byte("di"), info.Bytes())
	assert.ElementsMatch(t, []byte("ef"), errs.Bytes())
}

func TestFileLogger(t *testing.T) {
	dir := t.TempDir()

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:  true,
			Path:     dir,
			ErrorLog: "error.log",
			InfoLog:  "info.log",
			TraceLog: "trace.log",
			WarnLog:  "warn.log",
		},
	})
	require.NoError(t, err)

	log.Info().Msg("written to the info file")
	log.Error().Err(alwaysErrFunc()).Msg("written to the error file")

	infoLog, err := os.ReadFile(dir + "/info.log")
	require.NoError(t, err)
	assert.Contains(t, string(infoLog), "written to the info file")

	errorLog, err := os.ReadFile(dir + "/error.log")
	require.NoError(t, err)
	assert.Contains(t, string(errorLog), "written to the error file")
	assert.NotContains(t, string(errorLog), "written to the info file")
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func testLoggerConfig(t *testing.T, cfg logger.Log) string {
	t.Helper()
	// keep default std out
	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	err := logger.Init(cfg)
	if err != nil {
		t.Error(err)
	}

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message should be seen...")

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout
	os.Stderr = stderr // restoring the real stderr

	return <-outC
}
