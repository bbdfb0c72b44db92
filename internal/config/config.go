// Package config handles dem2mesh configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds triangulation settings.
type MeshConfig struct {
	Parallel          bool `yaml:"parallel"`           // build large grids on several goroutines
	ParallelThreshold int  `yaml:"parallel_threshold"` // minimum grid cells before going parallel
	NoDataAsNaN       bool `yaml:"nodata_as_nan"`      // replace NODATA samples with NaN
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // console or json
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Parallel:          true,
			ParallelThreshold: 1 << 20,
			NoDataAsNaN:       true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
	}
}

// UseParallel reports whether a grid of rows x cols should be built in parallel.
func (m MeshConfig) UseParallel(rows, cols int) bool {
	return m.Parallel && rows*cols >= m.ParallelThreshold
}
