package zfile

import "io"

// Preset configurations for common use cases

// LowMemoryConfig returns a configuration with small buffers, trading refill
// frequency for footprint.
func LowMemoryConfig() *Config {
	return &Config{
		InputBufferSize:  4 * 1024,
		OutputBufferSize: 16 * 1024,
		SeekBufferSize:   4 * 1024,
	}
}

// ReadFile opens the named file and returns its fully decompressed contents.
func ReadFile(name string) ([]byte, error) {
	f, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// fillConfig copies config, substituting defaults for unset fields.
func fillConfig(config *Config) *Config {
	filled := DefaultConfig()
	if config == nil {
		return filled
	}
	if config.InputBufferSize > 0 {
		filled.InputBufferSize = config.InputBufferSize
	}
	if config.OutputBufferSize > 0 {
		filled.OutputBufferSize = config.OutputBufferSize
	}
	if config.SeekBufferSize > 0 {
		filled.SeekBufferSize = config.SeekBufferSize
	}
	filled.Logger = config.Logger
	return filled
}
