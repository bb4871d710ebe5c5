package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gint/internal/domain"
)

// Config holds all configuration for a run. It is built once at startup and
// handed to every component; nothing reads the environment after Load.
type Config struct {
	// Execution service settings
	APIKey         string
	OrganizationID string
	APIURL         string

	// Tunnel settings
	Tunnel Tunnel

	// Run settings
	TestsPath      string
	OutputDir      string // Empty when results are not persisted
	SetupScript    string
	TeardownScript string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Command flags
	Flags Flags
}

// Tunnel holds the options used to open the public tunnel
type Tunnel struct {
	Addr      string // Local port or host:port to expose
	Proto     string // http, tcp or tls
	BindTLS   bool   // Only expose an https endpoint for http tunnels
	Authtoken string
}

// Flags holds command-line flags
type Flags struct {
	SetupScript    string
	TeardownScript string
	NameFilter     string
	EnvFile        string
	LogLevel       string
	LogFormat      string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		Tunnel:    Tunnel{Proto: DefaultTunnelProto},
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load loads the dotenv file, reads the environment and applies flags.
// A missing default .env file is ignored; a missing file passed explicitly is an error.
func Load(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if flags.EnvFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault(EnvAPIURL, DefaultAPIURL)
	v.SetDefault(EnvTunnelProto, DefaultTunnelProto)
	for _, key := range []string{
		EnvAPIKey, EnvOrganizationID, EnvAPIURL,
		EnvTunnelPort, EnvTunnelProto, EnvTunnelBindTLS, EnvNgrokAuthtoken,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := New()
	cfg.Flags = flags
	cfg.APIKey = strings.TrimSpace(v.GetString(EnvAPIKey))
	cfg.OrganizationID = strings.TrimSpace(v.GetString(EnvOrganizationID))
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(v.GetString(EnvAPIURL)), "/")
	cfg.Tunnel = Tunnel{
		Addr:      strings.TrimSpace(v.GetString(EnvTunnelPort)),
		Proto:     strings.ToLower(strings.TrimSpace(v.GetString(EnvTunnelProto))),
		BindTLS:   v.GetBool(EnvTunnelBindTLS),
		Authtoken: v.GetString(EnvNgrokAuthtoken),
	}
	cfg.ApplyFlags(flags)

	return cfg, nil
}

// ApplyFlags copies flag values over the loaded configuration
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	c.SetupScript = flags.SetupScript
	c.TeardownScript = flags.TeardownScript
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		c.LogFormat = flags.LogFormat
	}
}

// SetPaths resolves the tests path and optional output directory against the working directory.
func (c *Config) SetPaths(testsPath, outputDir string) {
	c.TestsPath = absPath(testsPath)
	c.OutputDir = ""
	if outputDir != "" {
		c.OutputDir = absPath(outputDir)
	}
}

// Validate checks the settings needed to open a tunnel and reach the execution service.
func (c *Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.OrganizationID == "" {
		missing = append(missing, EnvOrganizationID)
	}
	if c.Tunnel.Addr == "" {
		missing = append(missing, EnvTunnelPort)
	}
	if len(missing) > 0 {
		return &domain.ConfigError{Missing: missing}
	}

	if !slices.Contains(SupportedProtos, c.Tunnel.Proto) {
		return fmt.Errorf("unsupported tunnel protocol %q (expected one of %s)",
			c.Tunnel.Proto, strings.Join(SupportedProtos, ", "))
	}
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
