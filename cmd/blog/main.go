package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aledsdavies/blog/internal/builder"
	"github.com/aledsdavies/blog/pkgs/config"
)

// Build-time variables - can be set via ldflags
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

// Global flags
var (
	rootDir string
	verbose bool
	quiet   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Build a static website from blog source files",
	Long: `blog converts a tree of .txt pages written in a small markup language
into a static HTML website. A site is any directory holding a blog.toml file;
pages live under source/ and are written to html/.`,
	SilenceUsage: true,
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new site",
	Long:  "Create a new site in a directory called <name> with a default blog.toml and index page.",
	Args:  cobra.ExactArgs(1),
	RunE:  newCommand,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site",
	Long: `Convert every page under source/ into html/, write the stylesheet and
copy media files. Every error is reported before the command fails.`,
	Args: cobra.NoArgs,
	RunE: buildCommand,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the generated html directory",
	Args:  cobra.NoArgs,
	RunE:  cleanCommand,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display version, build time, and git commit information for blog.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blog %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Site root (default: nearest directory containing blog.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every file processed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Add subcommands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the development logger at the level the flags select
func newLogger() (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	switch {
	case verbose:
		level = zapcore.DebugLevel
	case quiet:
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}
	return logger.Sugar(), nil
}

// openSite locates the site root and loads its config
func openSite(log *zap.SugaredLogger) (*builder.Builder, error) {
	start := rootDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting working directory: %w", err)
		}
		start = wd
	}

	root, err := builder.FindRoot(start)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	log.Debugw("Loaded site", "root", root, "name", cfg.Site.Name)
	return builder.New(root, cfg, log), nil
}

func newCommand(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	name := args[0]
	dir, err := filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", name, err)
	}

	if err := builder.Scaffold(dir, filepath.Base(dir)); err != nil {
		return fmt.Errorf("error creating site: %w", err)
	}

	log.Infow("Created site", "path", dir)
	return nil
}

func buildCommand(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	b, err := openSite(log)
	if err != nil {
		return err
	}

	res := b.Build()
	if !res.Failed() {
		log.Infow("Site built", "pages", res.Value(), "output", b.OutputPath())
		return nil
	}

	errs := res.Errors()
	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return fmt.Errorf("build failed with %d error(s)", len(errs))
}

func cleanCommand(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	b, err := openSite(log)
	if err != nil {
		return err
	}

	if err := b.Clean(); err != nil {
		return err
	}

	log.Infow("Removed output", "path", b.OutputPath())
	return nil
}
