package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/journal"
	"duke3dmm/internal/locate"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Inspect and configure game versions",
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered game version",
	Args:  cobra.NoArgs,
	RunE:  runGameList,
}

var gameDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan Steam libraries for installed Duke Nukem 3D releases",
	Long: `Scan Steam libraries for known Duke Nukem 3D releases and, on
confirmation, record their install path against the matching registry entry.`,
	Args: cobra.NoArgs,
	RunE: runGameDetect,
}

var gameStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Report whether a mod is currently installed in a game version's directory",
	Long: `Consults the .duke3d_mod.json installed-mod journal in the game
version's directory. Normally empty between launches (the orchestrator
clears it once staging unwinds); a non-empty result after a launch means
the previous run crashed before it could unstage and restore originals.`,
	Args: cobra.ExactArgs(1),
	RunE: runGameStatus,
}

func init() {
	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameDetectCmd)
	gameCmd.AddCommand(gameStatusCmd)
	rootCmd.AddCommand(gameCmd)
}

type gameJSON struct {
	ID          string `json:"id"`
	LongName    string `json:"long_name"`
	GamePath    string `json:"game_path,omitempty"`
	RequiresDOS bool   `json:"requires_dosbox"`
}

func runGameList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := env.loadGameVersions()
	if err != nil {
		return fmt.Errorf("loading game version registry: %w", err)
	}
	all := registry.All()

	if jsonOutput {
		out := make([]gameJSON, len(all))
		for i, gv := range all {
			out[i] = gameJSON{ID: gv.ID, LongName: gv.LongName, GamePath: gv.GamePath, RequiresDOS: gv.RequiresDOSBox}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONFIGURED\tDOSBOX")
	for _, gv := range all {
		configured := "no"
		if gv.GamePath != "" {
			configured = "yes"
		}
		dosbox := "no"
		if gv.RequiresDOSBox {
			dosbox = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", gv.ID, gv.LongName, configured, dosbox)
	}
	return w.Flush()
}

// runGameDetect wires internal/locate's SteamLocator to the registry, asking
// which of the discovered install paths to record.
func runGameDetect(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := env.loadGameVersions()
	if err != nil {
		return fmt.Errorf("loading game version registry: %w", err)
	}

	steamLocator := locate.SteamLocator{}
	paths := locate.LocateGames(steamLocator, nil)
	if len(paths) == 0 {
		cmd.Println("No Steam-installed Duke Nukem 3D releases found.")
		return nil
	}

	cmd.Printf("Found %d candidate install path(s):\n", len(paths))
	for i, p := range paths {
		cmd.Printf("  [%d] %s\n", i+1, p)
	}
	cmd.Print("Assign path to a game version? Enter number, or blank to skip: ")

	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(paths) {
		return fmt.Errorf("invalid selection: %q", line)
	}

	cmd.Print("Game version id to assign it to (see 'duke3dmm game list'): ")
	idLine, _ := reader.ReadString('\n')
	id := strings.TrimSpace(idLine)
	gv := registry.GetByID(id)
	if gv == nil {
		return fmt.Errorf("unknown game version %q", id)
	}
	gv.GamePath = paths[idx-1]
	gv.MarkModified()

	if err := saveGameVersions(env, registry); err != nil {
		return err
	}
	cmd.Printf("Configured %s at %s\n", gv.LongName, gv.GamePath)
	return nil
}

type journalStatusJSON struct {
	GameVersion string `json:"game_version"`
	Installed   bool   `json:"installed"`
	ModID       string `json:"mod_id,omitempty"`
	ModName     string `json:"mod_name,omitempty"`
	ModVersion  string `json:"mod_version,omitempty"`
	InstalledAt string `json:"installed_at,omitempty"`
}

func runGameStatus(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := env.loadGameVersions()
	if err != nil {
		return fmt.Errorf("loading game version registry: %w", err)
	}

	gv := registry.GetByID(args[0])
	if gv == nil {
		return fmt.Errorf("unknown game version %q", args[0])
	}
	if gv.GamePath == "" {
		return fmt.Errorf("duke3dmm: %s is not configured", gv.LongName)
	}

	info, err := journal.Load(gv.GamePath)
	if err != nil {
		return fmt.Errorf("reading installed-mod journal: %w", err)
	}

	if jsonOutput {
		out := journalStatusJSON{GameVersion: gv.ID, Installed: info != nil}
		if info != nil {
			out.ModID = info.ModID
			out.ModName = info.ModName
			out.ModVersion = info.ModVersion
			out.InstalledAt = info.InstalledTimestamp.UTC().Format(time.RFC3339)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if info == nil {
		cmd.Printf("%s: no mod currently installed\n", gv.LongName)
		return nil
	}
	cmd.Printf("%s: %s (%s), installed %s\n", gv.LongName, info.ModName, info.ModVersion,
		info.InstalledTimestamp.UTC().Format(time.RFC3339))
	return nil
}

func saveGameVersions(env *environment, registry *gameversion.Collection) error {
	data, err := registry.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing game version registry: %w", err)
	}
	if err := os.WriteFile(env.gameVersionsPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing game version registry: %w", err)
	}
	return nil
}
