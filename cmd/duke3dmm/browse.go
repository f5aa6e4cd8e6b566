package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/launch"
	"duke3dmm/internal/resolver"
	"duke3dmm/internal/storage/db"
	"duke3dmm/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively pick a game version and mod, then launch",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := env.loadGameVersions()
	if err != nil {
		return fmt.Errorf("loading game version registry: %w", err)
	}
	col, err := env.loadCatalog()
	if err != nil {
		return fmt.Errorf("loading mod catalog: %w", err)
	}

	keyMode := env.settings.KeyMode
	if keyMode == "" {
		keyMode = "vim"
	}

	return tui.Run(registry, col, func(host *gameversion.GameVersion, mod *catalog.Mod) error {
		return launchFromBrowser(env, registry, host, mod)
	}, keyMode)
}

// launchFromBrowser resolves mod against host the same way the CLI's -s/-r
// flow does (spec §6), then drives the orchestrator and records the launch.
func launchFromBrowser(env *environment, registry *gameversion.Collection, host *gameversion.GameVersion, mod *catalog.Mod) error {
	match, err := organizedSearchExact(mod)
	if err != nil {
		return err
	}
	if match.Version == nil || match.Type == nil {
		return fmt.Errorf("duke3dmm: %q has no usable version/type", mod.Name)
	}

	res, err := resolver.Resolve(mod, match.VersionIndex, match.TypeIndex, host, registry, fileExists, promptAlternative)
	if err != nil {
		return err
	}

	req := launch.Request{
		Host:           res.HostGameVersion,
		ModGameVersion: res.ModGameVersion,
		ModsDir:        env.settings.ModsDirectory,
		MapsDir:        env.settings.MapsDirectory,
		LocateMap:      mapLocator(env.settings.MapsDirectory),
		DOSBoxPath:     env.settings.DOSBoxPath,
		DOSBoxArgs:     env.settings.DOSBoxArgs,
		ScriptLines:    defaultDOSBoxScript(),
		EnsureFiles:    buildEnsureFiles(env, mod, res.HostGameVersion, res.ModGameVersion, match.Version.Version),
	}

	runner := execRunner{verbose: verbose}
	if err := launch.Launch(context.Background(), req, runner, fileExists); err != nil {
		return err
	}

	env.settings.LastLaunch.GameVersionID = res.HostGameVersion.ID
	env.settings.LastLaunch.ModName = mod.Name
	env.settings.LastLaunch.ModVersion = match.Version.Version
	env.settings.LastLaunch.ModVersionType = match.Type.Type
	if err := env.settings.Save(env.configDir); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return env.db.RecordLaunch(db.LaunchRecord{
		LaunchID:       uuid.NewString(),
		GameVersionID:  res.HostGameVersion.ID,
		ModName:        mod.Name,
		ModVersion:     match.Version.Version,
		ModVersionType: match.Type.Type,
		LaunchedAt:     time.Now(),
	})
}
