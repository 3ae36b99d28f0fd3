package config

const (
	defaultOutputDir  = "downloads"
	defaultLogDir     = "~/.local/share/seqfetch/logs"
	defaultToolkitDir = "tools/sratoolkit"
	defaultHistoryDB  = "~/.local/share/seqfetch/history.db"

	defaultWorkers           = 4
	defaultSplitFiles        = true
	defaultTimeoutSeconds    = 300
	defaultMaxAttempts       = 3
	defaultRetryDelaySeconds = 5

	defaultResolverBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	// NCBI documents a ceiling of ~3 requests/second for unauthenticated use.
	defaultRequestDelayMS         = 340
	defaultResolverMaxAttempts    = 3
	defaultResolverTimeoutSeconds = 30

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	// MaxWorkers bounds the download worker pool.
	MaxWorkers = 16
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			ToolkitDir: defaultToolkitDir,
			HistoryDB:  defaultHistoryDB,
		},
		Download: Download{
			Workers:           defaultWorkers,
			SplitFiles:        defaultSplitFiles,
			TimeoutSeconds:    defaultTimeoutSeconds,
			MaxAttempts:       defaultMaxAttempts,
			RetryDelaySeconds: defaultRetryDelaySeconds,
		},
		Resolver: Resolver{
			BaseURL:        defaultResolverBaseURL,
			RequestDelayMS: defaultRequestDelayMS,
			MaxAttempts:    defaultResolverMaxAttempts,
			TimeoutSeconds: defaultResolverTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
