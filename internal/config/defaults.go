package config

import "srtwrap/internal/caption"

const (
	defaultConfigPath   = "~/.config/srtwrap/config.toml"
	defaultStateDir     = "~/.local/share/srtwrap"
	defaultLogDir       = "~/.local/share/srtwrap/logs"
	defaultBackupSuffix = ".backup"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Write modes accepted by output.write_mode.
const (
	WriteModeInPlace = "in_place"
	WriteModeAtomic  = "atomic"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Format: Format{
			MaxWidth:   caption.DefaultMaxWidth,
			PairSize:   caption.DefaultPairSize,
			MarkSuffix: caption.DefaultMarkSuffix,
		},
		Output: Output{
			BackupSuffix: defaultBackupSuffix,
			WriteMode:    WriteModeInPlace,
			History:      true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
