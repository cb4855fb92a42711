package config

const (
	defaultConfigPath  = "~/.config/mkvdefaulter/config.toml"
	projectConfigName  = "mkvdefaulter.toml"
	defaultMethod      = "strict"
	defaultDepth       = 0
	defaultExtension   = ".mkv"
	defaultPoolSize    = 1
	defaultLogFormat   = "console"
	defaultLogLevel    = "error"
	defaultToolTimeout = 0
	defaultMkvmerge    = "mkvmerge"
	defaultMkvpropedit = "mkvpropedit"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			TimeoutSeconds: defaultToolTimeout,
		},
		Defaults: Defaults{
			Method:     defaultMethod,
			Depth:      defaultDepth,
			Extensions: []string{defaultExtension},
			PoolSize:   defaultPoolSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
