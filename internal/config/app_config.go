// Package config loads layered application configuration for the stree CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the configuration file read from the home directory and the working directory.
	ConfigFileName = ".stree.yaml"
	// configTypeName forces viper to parse the file as yaml regardless of extension.
	configTypeName = "yaml"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds file-provided defaults for command-line flags.
type ApplicationConfiguration struct {
	InputMode string `mapstructure:"input_mode"`
	Color     string `mapstructure:"color"`
	Copy      *bool  `mapstructure:"copy"`
}

// Merge overlays the set fields of the overlay configuration onto the receiver.
func (configuration ApplicationConfiguration) Merge(overlay ApplicationConfiguration) ApplicationConfiguration {
	merged := configuration
	if overlay.InputMode != "" {
		merged.InputMode = overlay.InputMode
	}
	if overlay.Color != "" {
		merged.Color = overlay.Color
	}
	if overlay.Copy != nil {
		merged.Copy = overlay.Copy
	}
	return merged
}

// LoadApplicationConfiguration loads configuration from the global file in the
// user's home directory, then the local file in the working directory (or the
// explicit path when provided). Local values override global ones; missing
// files are not an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalConfiguration, loadError := loadConfigurationFromPath(filepath.Join(homeDirectory, ConfigFileName))
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := options.ExplicitFilePath
	switch {
	case localPath == "":
		localPath = filepath.Join(workingDirectory, ConfigFileName)
	case !filepath.IsAbs(localPath):
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}

	loader := viper.New()
	loader.SetConfigFile(configurationPath)
	loader.SetConfigType(configTypeName)
	if readError := loader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration %s: %w", configurationPath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := loader.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parse configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}
