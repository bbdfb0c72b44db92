package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
	flagJSON       = flag.Bool("json-logs", false, "Log in JSON format")
	flagParallel   = flag.Bool("parallel", false, "Always triangulate on several goroutines")
	flagSequential = flag.Bool("sequential", false, "Never triangulate on several goroutines")
	flagKeepNoData = flag.Bool("keep-nodata", false, "Keep NODATA samples instead of replacing them with NaN")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagJSON {
		cfg.Logging.Format = "json"
	}
	if *flagParallel {
		cfg.Mesh.Parallel = true
		cfg.Mesh.ParallelThreshold = 0
	}
	if *flagSequential {
		cfg.Mesh.Parallel = false
	}
	if *flagKeepNoData {
		cfg.Mesh.NoDataAsNaN = false
	}
}
