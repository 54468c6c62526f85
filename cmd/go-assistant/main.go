package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-assistant/internal/assistant"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/exchange"
	"github.com/tartampluch/go-assistant/internal/server"
)

// cliFlags holds the raw command line options.
type cliFlags struct {
	version    bool
	debug      bool
	configPath string
	language   string
	servePort  string
}

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (like closing the
// log file) run before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain parses the command line and returns the process exit code.
func runMain() int {
	var flags cliFlags

	root := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdShort,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return start(cmd, flags)
		},
	}

	root.Flags().BoolVar(&flags.version, config.FlagVersion, false, config.FlagDescVersion)
	root.Flags().BoolVar(&flags.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.Flags().StringVar(&flags.configPath, config.FlagConfig, "", config.FlagDescConfig)
	root.Flags().StringVar(&flags.language, config.FlagLanguage, "", config.FlagDescLanguage)
	root.Flags().StringVar(&flags.servePort, config.FlagServe, "", config.FlagDescServe)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// start sets up logging and signals, then runs the interactive session.
func start(cmd *cobra.Command, flags cliFlags) error {
	logCloser := setupLogging(flags.debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// Cancel the session on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, cmd, flags); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return err
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// run loads settings, wires dependencies and blocks on the shell loop.
func run(ctx context.Context, cmd *cobra.Command, flags cliFlags) error {
	settings, err := loadSettings(cmd, flags)
	if err != nil {
		return err
	}

	opts := assistant.Options{
		Settings: settings,
		Fetcher:  exchange.NewHTTPFetcher(),
	}

	var srv *server.FeedServer
	if settings.ServePort != "" {
		srv = server.NewFeedServer(settings.ServePort)
		opts.Publisher = srv
	}

	bot, err := assistant.New(opts)
	if err != nil {
		return err
	}

	srvErr := make(chan error, config.ChannelBufferSize)
	srvCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	if srv != nil {
		go func() {
			err := srv.Start(srvCtx)
			if err != nil {
				// The shell keeps running without feeds.
				slog.Error(config.ErrServerStartup,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
			}
			srvErr <- err
		}()
	}

	if err := bot.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}

	if srv == nil {
		return nil
	}
	stopServer()
	return <-srvErr
}

// loadSettings reads the settings file and environment, then applies flags
// that were set explicitly.
func loadSettings(cmd *cobra.Command, flags cliFlags) (config.Settings, error) {
	path := flags.configPath
	if path == "" {
		defaultPath, err := config.DefaultSettingsPath()
		if err != nil {
			slog.Warn(config.ErrConfigDir,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
		}
		path = defaultPath
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return settings, err
	}

	if cmd.Flags().Changed(config.FlagLanguage) {
		settings.Language = flags.language
	}
	if cmd.Flags().Changed(config.FlagServe) {
		settings.ServePort = flags.servePort
	}
	return settings, nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Stdout belongs to the conversation, so logs go to a file in the user's cache
// directory and, in debug mode, to stderr.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
