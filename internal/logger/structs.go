package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled" toml:"enabled"`
	UseConsoleWriter bool
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path"    toml:"path"`

	AccessLog        string `mapstructure:"access"           toml:"access"`
	AccessMaxSize    int    `mapstructure:"accessMaxSize"    toml:"accessMaxSize"`
	AccessMaxBackups int    `mapstructure:"accessMaxBackups" toml:"accessMaxBackups"`
	AccessMaxAge     int    `mapstructure:"accessMaxAge"     toml:"accessMaxAge"`

	ErrorLog        string `mapstructure:"error"           toml:"error"`
	ErrorMaxSize    int    `mapstructure:"errorMaxSize"    toml:"errorMaxSize"`
	ErrorMaxBackups int    `mapstructure:"errorMaxBackups" toml:"errorMaxBackups"`
	ErrorMaxAge     int    `mapstructure:"errorMaxAge"     toml:"errorMaxAge"`

	InfoLog        string `mapstructure:"info"           toml:"info"`
	InfoMaxSize    int    `mapstructure:"infoMaxSize"    toml:"infoMaxSize"`
	InfoMaxBackups int    `mapstructure:"infoMaxBackups" toml:"infoMaxBackups"`
	InfoMaxAge     int    `mapstructure:"infoMaxAge"     toml:"infoMaxAge"`

	TraceLog        string `mapstructure:"trace"           toml:"trace"`
	TraceMaxSize    int    `mapstructure:"traceMaxSize"    toml:"traceMaxSize"`
	TraceMaxBackups int    `mapstructure:"traceMaxBackups" toml:"traceMaxBackups"`
	TraceMaxAge     int    `mapstructure:"traceMaxAge"     toml:"traceMaxAge"`

	WarnLog        string `mapstructure:"warn"           toml:"warn"`
	WarnMaxSize    int    `mapstructure:"warnMaxSize"    toml:"warnMaxSize"`
	WarnMaxBackups int    `mapstructure:"warnMaxBackups" toml:"warnMaxBackups"`
	WarnMaxAge     int    `mapstructure:"warnMaxAge"     toml:"warnMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole if true the webservice access log is written to the console.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// File based logging with rotation.
	File LogFile `mapstructure:"file" toml:"file"`
}
