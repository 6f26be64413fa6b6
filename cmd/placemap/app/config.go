package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/placemap/pkg/constants"
	"github.com/agentstation/placemap/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Input documents
	ConfigPath   string
	FeaturesPath string
	LinkingPath  string

	// Output documents
	OutputDir    string
	Format       string
	Geometry     bool
	Validate     bool
	StrictWrites bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Config keys.
const (
	keyInputsConfig   = "inputs.config"
	keyInputsFeatures = "inputs.features"
	keyInputsLinking  = "inputs.linking"
	keyOutputsDir     = "outputs.dir"
	keyOutputsFormat  = "outputs.format"
	keyGeometry       = "geometry"
	keyValidate       = "validate"
	keyStrictWrites   = "strict_writes"
	keyConfigFile     = "config_file"
)

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (PLACEMAP_*)
// 3. .env files
// 4. Config file (.placemap.yaml in $HOME or the working directory)
// 5. Defaults
//
// configFile, when set, names the config file explicitly and it must exist.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = v.GetString(keyConfigFile)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".placemap")

		// A missing config file is fine, a broken one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.NewConfigError("config file", "reading .placemap.yaml", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		ConfigPath:   v.GetString(keyInputsConfig),
		FeaturesPath: v.GetString(keyInputsFeatures),
		LinkingPath:  v.GetString(keyInputsLinking),

		OutputDir:    v.GetString(keyOutputsDir),
		Format:       v.GetString(keyOutputsFormat),
		Geometry:     v.GetBool(keyGeometry),
		Validate:     v.GetBool(keyValidate),
		StrictWrites: v.GetBool(keyStrictWrites),

		// Logging configuration
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyInputsConfig, constants.DefaultConfigPath)
	v.SetDefault(keyInputsFeatures, constants.DefaultFeaturesPath)
	v.SetDefault(keyInputsLinking, constants.DefaultLinkingPath)
	v.SetDefault(keyOutputsDir, constants.DefaultOutputDir)
	v.SetDefault(keyOutputsFormat, "json")
	v.SetDefault(keyGeometry, true)
	v.SetDefault(keyValidate, true)
	v.SetDefault(keyStrictWrites, true)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("output", "")
	v.SetDefault(keyConfigFile, "")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden, so
// .env.local only fills what .env left unset.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
