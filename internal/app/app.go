// Package app implements the build-extra command line.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pojntfx/buildextra/internal/build"
	"github.com/pojntfx/buildextra/internal/config"
	"github.com/pojntfx/buildextra/internal/install"
	"github.com/pojntfx/buildextra/internal/status"
	"github.com/pojntfx/buildextra/internal/utils"
	"github.com/pojntfx/buildextra/pkg/gschema"
	"github.com/pojntfx/buildextra/pkg/linguas"
	"github.com/pojntfx/buildextra/pkg/manifest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	InstallCommand = "install"
	StatusCommand  = "status"

	defaultStatusJSON     = "build/i18n-status.json"
	defaultStatusMarkdown = "build/i18n-status.md"
)

var (
	errMissingCommand = errors.New("missing command")
	errUnknownCommand = errors.New("unknown command")
)

// Translate localizes user-facing strings. The binary swaps in gettext.
var Translate = func(s string) string {
	return s
}

// NewSpawner creates the process runner used by the build and install steps.
var NewSpawner = func(stdout, stderr io.Writer, dryRun bool) utils.Spawner {
	return utils.NewExec(stdout, stderr, dryRun)
}

type options struct {
	dir          string
	verbose      int
	manifestPath string
	dryRun       bool

	installDir       string
	root             string
	noCompileSchemas bool

	statusJSON     string
	statusMarkdown string
}

type runner func(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer) error

type subcommand struct {
	usage   string
	install bool
	status  bool
	run     runner
}

func subcommands() map[string]subcommand {
	return map[string]subcommand{
		build.BuildCommand: {
			usage: "Build translations, icons, help and data files",
			run: func(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer) error {
				_, err := runBuild(ctx, cfg, opts, stdout, stderr, &build.Build{Registry: build.DefaultRegistry()})

				return err
			},
		},
		build.I18nCommand: {
			usage: "Compile message catalogs and merge translated templates",
			run:   buildStep(&build.I18n{}),
		},
		build.IconsCommand: {
			usage: "Register the icon theme",
			run:   buildStep(&build.Icons{}),
		},
		build.HelpCommand: {
			usage: "Build and validate the translated help pages",
			run:   buildStep(&build.Help{}),
		},
		build.DataCommand: {
			usage: "Register the GSettings schemas",
			run:   buildStep(&build.Data{}),
		},
		install.InstallDataCommand: {
			usage:   "Install the registered data files and compile schemas",
			install: true,
			run: func(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer) error {
				m, err := manifest.Load(opts.manifestPath)
				if err != nil {
					return err
				}

				return runInstall(ctx, cfg, opts, stdout, stderr, m)
			},
		},
		InstallCommand: {
			usage:   "Build, then install the data files",
			install: true,
			run: func(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer) error {
				m, err := runBuild(ctx, cfg, opts, stdout, stderr, &build.Build{Registry: build.DefaultRegistry()})
				if err != nil {
					return err
				}

				return runInstall(ctx, cfg, opts, stdout, stderr, m)
			},
		},
		StatusCommand: {
			usage:  "Report the translation status of the message catalogs",
			status: true,
			run:    runStatus,
		},
	}
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	commands := subcommands()

	if len(args) == 0 {
		printUsage(stderr, commands)
		fmt.Fprintf(stderr, "%v: %v\n", Translate("error"), Translate(errMissingCommand.Error()))

		return 2
	}

	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(stdout, commands)

		return 0
	}

	command, ok := commands[name]
	if !ok {
		printUsage(stderr, commands)
		fmt.Fprintf(stderr, "%v: %v: %v\n", Translate("error"), Translate(errUnknownCommand.Error()), name)

		return 2
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := options{}
	fs.StringVar(&opts.dir, "C", ".", Translate("Source tree to build"))
	fs.IntVar(&opts.verbose, "verbose", 5, Translate("Verbosity level (0 is disabled, default is info, 7 is trace)"))
	fs.StringVar(&opts.manifestPath, "manifest", manifest.DefaultPath, Translate("Path of the data file manifest, relative to the source tree"))

	if !command.status {
		fs.BoolVar(&opts.dryRun, "dry-run", false, Translate("Log the commands and copies without running them"))
	}

	if command.install {
		fs.StringVar(&opts.installDir, "install-dir", install.DefaultInstallDir, Translate("Directory to install data files into"))
		fs.StringVar(&opts.root, "root", "", Translate("Staging directory to prepend to every installed path"))
		fs.BoolVar(&opts.noCompileSchemas, gschema.NoCompileSchemasFlag, false, Translate("Don't compile the installed GSettings schemas"))
	}

	if command.status {
		fs.StringVar(&opts.statusJSON, "json", defaultStatusJSON, Translate("Path to write the JSON report to"))
		fs.StringVar(&opts.statusMarkdown, "markdown", defaultStatusMarkdown, Translate("Path to write the Markdown report to"))
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		fmt.Fprintf(stderr, "%v: %v\n", Translate("error"), err)

		return 1
	}
	opts.dir = dir
	opts.manifestPath = inDir(dir, opts.manifestPath)
	opts.statusJSON = inDir(dir, opts.statusJSON)
	opts.statusMarkdown = inDir(dir, opts.statusMarkdown)

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(stderr, "%v: %v\n", Translate("error"), err)

		return 1
	}

	verbose := cfg.Env.Verbose
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "verbose" {
			verbose = opts.verbose
		}
	})
	setupLogging(stderr, verbose)

	if err := command.run(ctx, cfg, opts, stdout, stderr); err != nil {
		log.Debug().Err(err).Str("command", name).Msg("Command failed")

		fmt.Fprintf(stderr, "%v: %v\n", Translate("error"), err)

		return 1
	}

	return 0
}

func printUsage(w io.Writer, commands map[string]subcommand) {
	fmt.Fprintf(w, "%v: build-extra <%v> [%v]\n\n%v:\n", Translate("Usage"), Translate("command"), Translate("flags"), Translate("Commands"))

	names := append([]string{}, build.BuildCommand)
	names = append(names, build.SubCommands...)
	names = append(names, install.InstallDataCommand, InstallCommand, StatusCommand)

	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %v\n", name, Translate(commands[name].usage))
	}
}

func setupLogging(stderr io.Writer, verbose int) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr})

	switch verbose {
	case 0:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case 1:
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case 3:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case 4:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 5:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 6:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
}

func inDir(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

func buildStep(command build.Command) runner {
	return func(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer) error {
		_, err := runBuild(ctx, cfg, opts, stdout, stderr, command)

		return err
	}
}

// runBuild runs a build step and persists the data files it registered for a
// later install_data.
func runBuild(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer, command build.Command) (*manifest.Manifest, error) {
	bc := build.NewContext(cfg, NewSpawner(stdout, stderr, opts.dryRun))

	if err := build.RunCommand(ctx, bc, command); err != nil {
		return nil, err
	}

	if err := bc.Manifest.Save(opts.manifestPath); err != nil {
		return nil, err
	}

	log.Info().
		Str("path", opts.manifestPath).
		Int("entries", bc.Manifest.Len()).
		Msg("Wrote data file manifest")

	return bc.Manifest, nil
}

func runInstall(ctx context.Context, cfg config.Config, opts options, stdout, stderr io.Writer, m *manifest.Manifest) error {
	c := &install.InstallData{
		Options: install.Options{
			InstallDir:       opts.installDir,
			Root:             opts.root,
			NoCompileSchemas: opts.noCompileSchemas,
			DryRun:           opts.dryRun,
		},
		Dir:      cfg.Dir,
		Env:      cfg.Env,
		Project:  cfg.Project,
		Spawner:  NewSpawner(stdout, stderr, opts.dryRun),
		Manifest: m,
	}

	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}

	for _, output := range c.Outputs() {
		fmt.Fprintln(stdout, output)
	}

	return nil
}

func runStatus(_ context.Context, cfg config.Config, opts options, stdout, stderr io.Writer) error {
	poDir := filepath.Join(cfg.Dir, cfg.Project.PODir)

	selected, err := linguas.ForCatalogs(cfg.Env.LinguasSource(filepath.Join(poDir, "LINGUAS"), ""))
	if err != nil {
		return err
	}

	rep, err := status.Build(cfg.Project.Domain, poDir, selected)
	if err != nil {
		return err
	}

	if err := status.WriteJSON(opts.statusJSON, rep); err != nil {
		return err
	}

	if err := status.WriteMarkdown(opts.statusMarkdown, rep); err != nil {
		return err
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(stdout, "%-8s %5.1f%% %v\n", locale.Locale, locale.Completion, locale.Name)
	}

	return nil
}
