package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
)

// AppName names the data, config and log directories and the database file.
const AppName = "querry"

type DefaultPaths struct {
	ConfigDir    string
	DBPath       string
	LogPath      string
	IconsDir     string
	IconFallback string
	LogLevel     string
	ServerPort   string
	EventBuffer  int
}

type Configuration struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Icons struct {
		Dir      string `mapstructure:"dir"`
		Fallback string `mapstructure:"fallback"`
	} `mapstructure:"icons"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Logging struct {
		Level string `mapstructure:"level"`
		Path  string `mapstructure:"path"`
	} `mapstructure:"logging"`
	Events struct {
		Buffer int `mapstructure:"buffer"`
	} `mapstructure:"events"`
}

// Overrides carries command-line flag values. Empty fields leave the config untouched.
type Overrides struct {
	DBPath   string
	LogPath  string
	LogLevel string
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// GetDefaultConfigPaths resolves the per-OS locations used when nothing else is configured.
func GetDefaultConfigPaths() DefaultPaths {
	scope := gap.NewScope(gap.User, AppName)
	paths := DefaultPaths{
		IconFallback: "1F4A6.svg",
		LogLevel:     "INFO",
		ServerPort:   "8779",
		EventBuffer:  256,
	}

	var err error
	if paths.ConfigDir, err = scope.ConfigPath(""); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not resolve config dir: %v. Using current directory.\n", err)
		paths.ConfigDir = "."
	}
	if paths.DBPath, err = scope.DataPath(AppName + ".db"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not resolve data dir: %v. Using current directory.\n", err)
		paths.DBPath = AppName + ".db"
	}
	if paths.LogPath, err = scope.LogPath(AppName + ".log"); err != nil {
		paths.LogPath = filepath.Join(paths.ConfigDir, "logs", AppName+".log")
	}
	paths.IconsDir = filepath.Join(filepath.Dir(paths.DBPath), "icons")
	return paths
}

// Init loads defaults, the YAML config file, QUERRY_* environment variables and finally
// flag overrides into AppConfig.
func Init(cfgFile string, flags Overrides) error {
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("icons.dir", defaults.IconsDir)
	v.SetDefault("icons.fallback", defaults.IconFallback)
	v.SetDefault("server.port", defaults.ServerPort)
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("logging.path", defaults.LogPath)
	v.SetDefault("events.buffer", defaults.EventBuffer)

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("QUERRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if cfgFile != "" {
				return fmt.Errorf("reading config file %s: %w", cfgFile, err)
			}
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if flags.DBPath != "" {
		cfg.Database.Path = flags.DBPath
	}
	if flags.LogPath != "" {
		cfg.Logging.Path = flags.LogPath
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = strings.ToUpper(flags.LogLevel)
	}

	for _, p := range []*string{&cfg.Database.Path, &cfg.Logging.Path, &cfg.Icons.Dir} {
		expanded, err := expandTilde(*p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in '%s': %v.\n", *p, err)
			continue
		}
		*p = expanded
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = AppName + ".db"
	}
	if cfg.Events.Buffer <= 0 {
		cfg.Events.Buffer = defaults.EventBuffer
	}

	AppConfig = cfg
	return nil
}
