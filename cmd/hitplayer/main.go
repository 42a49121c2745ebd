package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/platform"
	"github.com/ytget/hitplayer/internal/probe"
	"github.com/ytget/hitplayer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.hitplayer"
	AppName = "HitPlayer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.DefaultOptions()
	cmd := &cobra.Command{
		Use:           "hitplayer",
		Short:         "Play a local video library and download YouTube videos into it",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	opts.Register(cmd)
	return cmd
}

func run(ctx context.Context, opts config.Options) error {
	logger := config.SetupLogger(opts.LogLevel, opts.LogFormat)
	slog.SetDefault(logger)
	logger.Info("HitPlayer starting", "version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewPlayerTheme())

	settings := config.NewSettings(myApp)
	opts.Apply(settings)
	for _, dir := range []string{settings.GetDownloadDirectory(), settings.GetVideoDirectory()} {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			logger.Warn("failed to ensure directory", "dir", dir, "error", err)
		}
	}

	if opts.InstallYTDLP {
		go func() {
			if err := download.InstallYTDLP(ctx); err != nil {
				logger.Error("yt-dlp install failed", "error", err)
			}
		}()
	}

	source := download.NewYTDLPSource(logger)
	lister := platform.NewPlaylistParserService(logger)
	services := ui.Services{
		Single:   download.NewSingleWorker(source, logger),
		Playlist: download.NewPlaylistWorker(source, lister, settings.GetFailurePolicy(), logger),
		Manager:  download.NewManager(source, settings.GetMaxParallelDownloads(), logger),
		Probe:    probe.NewService(logger),
		Logger:   logger,
	}

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	if icon, err := ui.LoadLogoResource(); err == nil {
		window.SetIcon(icon)
	}

	// Closing the window cancels everything the views started
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	root := ui.NewRootUI(ctx, window, myApp, settings, services)
	window.SetOnClosed(func() {
		root.Stop()
		cancel()
	})

	go func() {
		<-ctx.Done()
		fyne.Do(myApp.Quit)
	}()

	window.ShowAndRun()
	logger.Info("HitPlayer stopped")
	return nil
}
