package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sambabib/dupcheck/pkg/lockfile"
)

// FileName is the name of the configuration file looked up in a project.
const FileName = ".dupcheck.yaml"

// Config represents the configuration for the duplicate checker
type Config struct {
	// Ignore specific packages
	IgnorePackages []string `yaml:"ignorePackages"`

	// How to report pnpm/Yarn entries whose key only holds a specifier:
	// "keep" (report the specifier) or "require-resolved" (skip the entry)
	SpecifierPolicy string `yaml:"specifierPolicy"`

	// Command used to print bun.lockb as text
	BunCommand string `yaml:"bunCommand"`

	// Output configuration
	Output struct {
		Format string `yaml:"format"` // text, table, json, sarif
		File   string `yaml:"file"`   // Output file path (stdout if empty)
	} `yaml:"output"`

	// Overrides configuration
	Overrides struct {
		Apply bool `yaml:"apply"` // write the greatest version of each duplicate into the manifest
	} `yaml:"overrides"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{
		IgnorePackages:  []string{},
		SpecifierPolicy: lockfile.KeepSpecifier.String(),
		BunCommand:      "bun",
	}

	// Set default output format
	config.Output.Format = "text"

	return config
}

// LoadConfig loads the configuration from the specified file path
// If no path is provided, it looks for .dupcheck.yaml in the current directory
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config path provided, look in current directory
	if configPath == "" {
		configPath = FileName
	}

	// Check if the file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, return default config
		return config, nil
	}

	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse the YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, config.validate()
}

// FindAndLoadConfig searches for a config file in the project directory and its parents
func FindAndLoadConfig(projectPath string) (*Config, error) {
	config := DefaultConfig()

	// Start from the project directory and work up to the root
	currentDir, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("error resolving project path %s: %w", projectPath, err)
	}
	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			// Found a config file, load it
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
			}

			// Parse the YAML
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("error parsing config file %s: %w", configPath, err)
			}

			return config, config.validate()
		}

		// Move up to the parent directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached the root directory, no config file found
			break
		}
		currentDir = parentDir
	}

	// No config file found, return default config
	return config, nil
}

// IsPackageIgnored checks if a package should be ignored based on the configuration
func (c *Config) IsPackageIgnored(packageName string) bool {
	for _, ignoredPackage := range c.IgnorePackages {
		if ignoredPackage == packageName {
			return true
		}
		if matched, _ := filepath.Match(ignoredPackage, packageName); matched {
			return true
		}
	}
	return false
}

// Policy returns the configured specifier policy
func (c *Config) Policy() lockfile.SpecifierPolicy {
	// validate has already rejected unknown values
	p, _ := lockfile.ParseSpecifierPolicy(c.SpecifierPolicy)
	return p
}

func (c *Config) validate() error {
	if _, err := lockfile.ParseSpecifierPolicy(c.SpecifierPolicy); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Output.Format {
	case "", "text", "table", "json", "sarif":
	default:
		return fmt.Errorf("invalid config: unknown output format %q", c.Output.Format)
	}
	return nil
}
