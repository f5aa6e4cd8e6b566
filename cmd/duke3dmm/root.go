// Package main implements the duke3dmm command-line launcher: the terminal
// shell collaborator that parses the CLI surface, loads the catalog/registry
// files, resolves a mod against a host engine, and drives the launch
// orchestrator.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/resolver"
	"duke3dmm/internal/storage/config"
	"duke3dmm/internal/storage/db"
)

// ErrCancelled marks a user-cancelled operation (spec §7 UserCancelError,
// "treated as clean abort"). Execute exits 2 for it and for
// resolver.ErrAborted, which is what declining the alternative-engine
// prompt returns.
var ErrCancelled = errors.New("cancelled")

var (
	version = "0.1.0"

	configDir  string
	dataDir    string
	verbose    bool
	jsonOutput bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:     "duke3dmm",
	Short:   "Duke Nukem 3D mod catalog and launch orchestrator",
	Version: version,
	Long: `duke3dmm searches a mod catalog, resolves the chosen mod against an
installed engine build, stages the game directory, and launches it.

Run with no arguments to launch the most recently used mod and game version.
Use -s/-r/-n to pick a mod, -v to pick a game version, and subcommands
(catalog, game) to inspect the registries duke3dmm reads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE:          runLaunch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format where supported")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// The original CLI's own "-h" flag selects a DEF file, so help is bound
	// to "-?" instead of cobra's default "-h" shorthand.
	rootCmd.Flags().BoolP("help", "?", false, "help for "+rootCmd.Name())

	registerLaunchFlags(rootCmd)
}

func colorEnabled() bool {
	if noColor {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// Execute runs the root command. Exit codes follow spec §6: 0 success, 2
// user-cancelled, 1 any other hard error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrCancelled) || errors.Is(err, resolver.ErrAborted) {
			os.Exit(2)
		}
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// environment bundles everything a command needs to touch disk state: the
// resolved directories, the loaded settings, the persistence layer, and
// (lazily) the catalog and game-version registry.
type environment struct {
	configDir string
	dataDir   string
	cacheDir  string

	settings *config.Settings
	db       *db.DB
}

func loadEnvironment() (*environment, error) {
	cfgDir := configDir
	dataD := dataDir
	if cfgDir == "" {
		cfgDir = config.DefaultConfigDir()
	}
	if dataD == "" {
		dataD = config.DefaultDataDir()
	}
	cacheD := config.DefaultCacheDir()

	for _, dir := range []string{cfgDir, dataD, cacheD} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	settings, err := config.Load(cfgDir)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	database, err := db.New(filepath.Join(dataD, "duke3dmm.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &environment{configDir: cfgDir, dataDir: dataD, cacheDir: cacheD, settings: settings, db: database}, nil
}

func (e *environment) Close() error {
	return e.db.Close()
}

func (e *environment) catalogPath() string {
	return filepath.Join(e.configDir, "mods.json")
}

func (e *environment) gameVersionsPath() string {
	return filepath.Join(e.configDir, "gameversions.json")
}

func (e *environment) loadCatalog() (*catalog.Collection, error) {
	if _, err := os.Stat(e.catalogPath()); errors.Is(err, os.ErrNotExist) {
		return catalog.NewCollection(), nil
	}
	if !verbose {
		return catalog.LoadFrom(e.catalogPath())
	}

	col, diagnostics, err := catalog.LoadFromWithDiagnostics(e.catalogPath())
	for _, d := range diagnostics {
		fmt.Fprintln(os.Stderr, colorYellow("catalog: "+d))
	}
	return col, err
}

func (e *environment) loadGameVersions() (*gameversion.Collection, error) {
	return gameversion.LoadOrCreateDefault(e.gameVersionsPath())
}

func main() {
	Execute()
}
