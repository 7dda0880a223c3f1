package picker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	defaults "github.com/omnirec/picker/default"
)

// Config represents the picker configuration loaded from picker.toml.
type Config struct {
	Picker PickerConfig `toml:"picker"`
}

// PickerConfig holds settings for the picker binary.
type PickerConfig struct {
	// FallbackPicker is the delegate tool invoked when no selection is available.
	FallbackPicker string `toml:"fallback_picker"`
	// DialogCommand overrides the consent dialog binary.
	DialogCommand string `toml:"dialog_command,omitempty"`
	// LogFile is the append-only picker log file.
	LogFile string `toml:"log_file"`
}

// ConfigDir returns the config directory path.
// Resolution order: $OMNIREC_CONFIG_DIR > $XDG_CONFIG_HOME/omnirec > ~/.config/omnirec
func ConfigDir() string {
	if dir := os.Getenv("OMNIREC_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "omnirec")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", "omnirec-config")
	}
	return filepath.Join(home, ".config", "omnirec")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "picker.toml")
}

// DefaultConfig returns the default configuration from the embedded picker.toml.
func DefaultConfig() *Config {
	var cfg Config
	if err := toml.Unmarshal(defaults.DefaultConfigTOML, &cfg); err != nil {
		panic("picker: invalid embedded default config: " + err.Error())
	}
	return &cfg
}

// LoadConfig loads config from disk or returns defaults if not found.
// An optional .env file in the config directory is applied to the environment
// first, so development overrides take effect before env resolution.
func LoadConfig() (*Config, error) {
	godotenv.Load(filepath.Join(ConfigDir(), ".env"))

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Apply defaults for missing fields
	def := DefaultConfig()
	if cfg.Picker.FallbackPicker == "" {
		cfg.Picker.FallbackPicker = def.Picker.FallbackPicker
	}
	if cfg.Picker.LogFile == "" {
		cfg.Picker.LogFile = def.Picker.LogFile
	}

	return &cfg, nil
}

// SocketPath returns the service socket path: the runtime directory joined
// with omnirec/service.sock.
// Runtime directory resolution order: $OMNIREC_SOCKET (full path override) >
// $XDG_RUNTIME_DIR > /run/user/<uid> > /tmp.
func SocketPath() string {
	if path := os.Getenv("OMNIREC_SOCKET"); path != "" {
		return path
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		perUser := fmt.Sprintf("/run/user/%d", os.Getuid())
		if info, err := os.Stat(perUser); err == nil && info.IsDir() {
			runtimeDir = perUser
		} else {
			runtimeDir = "/tmp"
		}
	}
	return filepath.Join(runtimeDir, "omnirec", "service.sock")
}

// ResolveFallbackPicker returns the fallback picker binary name.
// Priority: $OMNIREC_FALLBACK_PICKER env > config value.
func ResolveFallbackPicker(cfg *Config) string {
	if name := os.Getenv("OMNIREC_FALLBACK_PICKER"); name != "" {
		return name
	}
	if cfg != nil && cfg.Picker.FallbackPicker != "" {
		return cfg.Picker.FallbackPicker
	}
	return DefaultConfig().Picker.FallbackPicker
}

// ResolveDialogCommand returns the consent dialog binary override, if any.
// Priority: $OMNIREC_DIALOG env > config value.
func ResolveDialogCommand(cfg *Config) string {
	if cmd := os.Getenv("OMNIREC_DIALOG"); cmd != "" {
		return cmd
	}
	if cfg != nil {
		return cfg.Picker.DialogCommand
	}
	return ""
}

// ResolveLogFile returns the picker log file path.
// Priority: $OMNIREC_PICKER_LOG env > config value.
func ResolveLogFile(cfg *Config) string {
	if path := os.Getenv("OMNIREC_PICKER_LOG"); path != "" {
		return path
	}
	if cfg != nil && cfg.Picker.LogFile != "" {
		return cfg.Picker.LogFile
	}
	return DefaultConfig().Picker.LogFile
}
