package cli

import "ctp/internal/config"

// Flags holds command-line flags
type Flags struct {
	BuildDir     string
	Pause        bool
	EnvVars      []string
	EnvFile      string
	NoSecondPass bool
	NoCasePass   bool
	CTestPath    string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags(extraArgs []string) config.Flags {
	return config.Flags{
		BuildDir:     f.BuildDir,
		Pause:        f.Pause,
		EnvVars:      f.EnvVars,
		EnvFile:      f.EnvFile,
		NoSecondPass: f.NoSecondPass,
		NoCasePass:   f.NoCasePass,
		CTestPath:    f.CTestPath,
		ExtraArgs:    extraArgs,
	}
}
