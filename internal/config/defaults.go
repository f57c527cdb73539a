package config

const (
	defaultConfigPath        = "~/.config/qap/config.toml"
	defaultWorkingDir        = "~/.local/share/qap/work"
	defaultOutputDir         = "~/.local/share/qap/output"
	defaultLogDir            = "~/.local/share/qap/logs"
	defaultStorageEndpoint   = "s3.amazonaws.com"
	defaultStorageRegion     = "us-east-1"
	defaultStorageProfile    = "default"
	defaultUploadConcurrency = 4
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkingDir: defaultWorkingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Storage: Storage{
			Endpoint:          defaultStorageEndpoint,
			Region:            defaultStorageRegion,
			UseSSL:            true,
			Profile:           defaultStorageProfile,
			UploadConcurrency: defaultUploadConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
