package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lvim-tech/cmenu/pkg/action"
	"github.com/lvim-tech/cmenu/pkg/config"
	"github.com/lvim-tech/cmenu/pkg/console"
	"github.com/lvim-tech/cmenu/pkg/launcher"
	"github.com/lvim-tech/cmenu/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

type options struct {
	configPath string
	logFile    string
	logLevel   string
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "cmenu",
		Short:         "Numbered console menus",
		Long:          "cmenu shows a numbered menu built from ~/.config/cmenu/config.toml and runs the chosen actions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: user or system config)")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRenderCommand(opts),
		newInitCommand(),
		newVersionCommand(),
	)

	return root
}

func newRenderCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render [message]",
		Short: "Print the menu once without reading input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := ""
			if len(args) == 1 {
				message = args[0]
			}
			return renderMenu(opts, cmd.OutOrStdout(), message)
		},
	}
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config to ~/.config/cmenu/config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.InitUserConfig(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config initialized at: %s\n", config.GetUserConfigPath())
			fmt.Fprintln(out, "\nYou can now edit the config file to customize cmenu.")
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cmenu version %s\n", version)
		},
	}
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, nil
}

func runMenu(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	term := console.Stdio()
	env := action.Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}

	interactive, err := launcher.New(cfg.Menu, term, term, env, logger)
	if err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}

	logger.Info("menu opened", zap.String("title", interactive.Title()), zap.Bool("tty", term.IsInteractive()))

	err = interactive.Open(ctx)
	switch {
	case err == nil, console.IsInterrupted(err), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		logger.Info("menu closed", zap.String("title", interactive.Title()))
		return nil
	default:
		logger.Error("menu failed", zap.Error(err))
		return err
	}
}

func renderMenu(opts *options, out io.Writer, message string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	display := console.NewWriter(out, false)
	interactive, err := launcher.New(cfg.Menu, display, console.NewReader(os.Stdin), action.Env{}, nil)
	if err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}

	return interactive.Menu().Render(display, message)
}
