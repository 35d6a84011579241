package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssobj/config"
	"cssobj/misc"
	"cssobj/state"
	"cssobj/transform"
)

// initializeAppContext prepares application context before command execution
// but after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - cli.Exit() is non-transparent,
// subcommands return regular errors.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

// runTransform compiles a CSS source file into a style-object tree and
// writes it out as indented JSON.
func runTransform(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if cmd.NArg() == 0 {
		return fmt.Errorf("no source file specified")
	}
	source := cmd.Args().Get(0)
	destination := cmd.Args().Get(1)

	opts := transform.Options{
		ParseKeyframes:     env.Cfg.Transform.ParseKeyframes || cmd.Bool("keyframes"),
		ParseMediaQueries:  env.Cfg.Transform.ParseMediaQueries || cmd.Bool("media-queries"),
		ParsePartSelectors: env.Cfg.Transform.ParsePartSelectors || cmd.Bool("part-selectors"),
		IgnoreRule:         env.Cfg.Transform.IgnorePredicate(),
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("unable to read source file: %w", err)
	}

	res, err := transform.New(env.Log).Transform(string(data), opts)
	if err != nil {
		return fmt.Errorf("unable to transform %q: %w", source, err)
	}
	for _, s := range res.Skipped {
		env.Log.Warn("Skipped selector", zap.String("selector", s.Selector), zap.String("reason", s.Reason))
	}

	out, err := json.MarshalIndent(res.Object(), "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize result: %w", err)
	}
	out = append(out, '\n')

	if len(destination) == 0 {
		_, err = os.Stdout.Write(out)
		return err
	}
	if _, er := os.Stat(destination); er == nil && !cmd.Bool("overwrite") {
		return fmt.Errorf("destination %q already exists, use --overwrite", destination)
	}

	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer func() {
		if er := f.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close destination file: %w", er))
		}
	}()

	if _, err = f.Write(out); err != nil {
		return fmt.Errorf("unable to write destination file: %w", err)
	}
	env.Log.Info("Transformation done", zap.String("source", source), zap.String("destination", destination),
		zap.Int("selectors", len(res.Styles)), zap.Int("mediaScopes", len(res.Media)))
	return nil
}

// outputConfiguration dumps either default or active configuration (YAML).
func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	var data []byte
	if cmd.Bool("default") {
		if data, err = config.Prepare(); err != nil {
			return fmt.Errorf("unable to prepare default configuration: %w", err)
		}
	} else {
		cfg := env.Cfg
		if cfg == nil {
			// dumpconfig without arguments skips app-context initialization
			if cfg, err = config.LoadConfiguration(cmd.String("config")); err != nil {
				return fmt.Errorf("unable to prepare configuration: %w", err)
			}
		}
		if data, err = config.Dump(cfg); err != nil {
			return fmt.Errorf("unable to dump active configuration: %w", err)
		}
	}

	if cmd.NArg() == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cmd.Args().Get(0), data, 0644)
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "compiles a CSS subset into a style-object tree (JSON)",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting"},
		},
		Commands: []*cli.Command{
			{
				Name:         "transform",
				Usage:        "Transforms CSS file into a style-object tree",
				OnUsageError: usageErrorHandler,
				Action:       runTransform,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "keyframes", Aliases: []string{"k"}, Usage: "extract @keyframes blocks and bind them to animation declarations"},
					&cli.BoolFlag{Name: "media-queries", Aliases: []string{"m"}, Usage: "validate and lower @media blocks"},
					&cli.BoolFlag{Name: "part-selectors", Aliases: []string{"p"}, Usage: "accept ::part(name) selectors"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to the CSS file to transform

DESTINATION:
    file name to write the JSON result to, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
