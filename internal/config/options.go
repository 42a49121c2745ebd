package config

import "github.com/spf13/cobra"

// Options are the startup values given on the command line
type Options struct {
	LogLevel     string
	LogFormat    string
	VideoDir     string
	InstallYTDLP bool
}

// DefaultOptions returns the options used when no flag is given
func DefaultOptions() Options {
	return Options{
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		InstallYTDLP: true,
	}
}

// Register binds the options to flags of cmd
func (o *Options) Register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&o.LogFormat, "log-format", o.LogFormat, "log format: text or json")
	flags.StringVar(&o.VideoDir, "video-dir", o.VideoDir, "library directory for this session")
	flags.BoolVar(&o.InstallYTDLP, "ytdlp-install", o.InstallYTDLP, "download a yt-dlp binary when none is installed")
}

// Apply carries session overrides into the settings
func (o Options) Apply(s *Settings) {
	if o.VideoDir != "" {
		s.OverrideVideoDirectory(o.VideoDir)
	}
}
