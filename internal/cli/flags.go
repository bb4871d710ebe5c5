package cli

import "gint/internal/config"

// Flags holds command-line flags
type Flags struct {
	SetupScript    string
	TeardownScript string
	NameFilter     string
	EnvFile        string
	LogLevel       string
	LogFormat      string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		SetupScript:    f.SetupScript,
		TeardownScript: f.TeardownScript,
		NameFilter:     f.NameFilter,
		EnvFile:        f.EnvFile,
		LogLevel:       f.LogLevel,
		LogFormat:      f.LogFormat,
	}
}
