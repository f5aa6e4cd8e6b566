package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/launch"
	"duke3dmm/internal/resolver"
	"duke3dmm/internal/storage/config"
	"duke3dmm/internal/storage/db"
	"duke3dmm/internal/strutil"
)

var (
	searchQuery    string
	randomMod      bool
	noMod          bool
	explicitGroups []string
	explicitCon    string
	explicitDef    string
	explicitMap    string
	sessionType    string
	gameVersionID  string
	serverIP       string
	serverPort     string
	localMode      bool
	hashNew        bool
	hashAll        bool
)

// registerLaunchFlags attaches the CLI surface described in spec §6 to cmd.
func registerLaunchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&searchQuery, "search", "s", "", "select mod by search query")
	cmd.Flags().BoolVarP(&randomMod, "random", "r", false, "select a random mod")
	cmd.Flags().BoolVarP(&noMod, "no-mod", "n", false, "run with no mod")
	cmd.Flags().StringArrayVarP(&explicitGroups, "group", "g", nil, "explicit group file (repeatable)")
	cmd.Flags().StringVarP(&explicitCon, "con", "x", "", "explicit CON file")
	cmd.Flags().StringVarP(&explicitDef, "def", "h", "", "explicit DEF file")
	cmd.Flags().StringVar(&explicitMap, "map", "", "explicit map file")
	cmd.Flags().StringVarP(&sessionType, "session-type", "t", "", "Game|Setup|Client|Server")
	cmd.Flags().StringVarP(&gameVersionID, "game-version", "v", "", "host game version id")
	cmd.Flags().StringVar(&serverIP, "ip", "", "multiplayer server address")
	cmd.Flags().StringVar(&serverPort, "port", "", "multiplayer server port")
	cmd.Flags().BoolVar(&localMode, "local", false, "enable local mode (no network downloads)")
	cmd.Flags().BoolVar(&hashNew, "hash-new", false, "rehash only files missing from the hash cache or changed since they were cached, then exit")
	cmd.Flags().BoolVar(&hashAll, "hash-all", false, "rehash every mod/map file, then exit")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if hashNew || hashAll {
		return runHash(cmd, env, hashAll)
	}

	registry, err := env.loadGameVersions()
	if err != nil {
		return fmt.Errorf("loading game version registry: %w", err)
	}

	host, err := resolveHost(registry, env.settings)
	if err != nil {
		return err
	}

	passthrough := passthroughArgs(cmd, args)

	var chosenMod *catalog.Mod
	var modGameVersion *catalog.ModGameVersion
	var versionStr, versionTypeStr string

	if !noMod {
		col, err := env.loadCatalog()
		if err != nil {
			return fmt.Errorf("loading mod catalog: %w", err)
		}
		organized := catalog.NewOrganizedCollection(col, catalog.GroupByGameVersion)

		match, err := selectMod(organized, env.settings)
		if err != nil {
			return err
		}
		if match.Mod == nil || match.Version == nil || match.Type == nil {
			return fmt.Errorf("duke3dmm: selected mod has no usable version/type")
		}
		chosenMod = match.Mod
		versionStr = match.Version.Version
		versionTypeStr = match.Type.Type

		res, err := resolver.Resolve(match.Mod, match.VersionIndex, match.TypeIndex, host, registry, fileExists, promptAlternative)
		if err != nil {
			return err
		}
		host = res.HostGameVersion
		modGameVersion = applyExplicitOverrides(res.ModGameVersion)
	}

	req := launch.Request{
		Host:            host,
		ModGameVersion:  modGameVersion,
		ModsDir:         env.settings.ModsDirectory,
		MapsDir:         env.settings.MapsDirectory,
		IP:              serverIP,
		Port:            serverPort,
		PassthroughArgs: passthrough,
		LocateMap:       mapLocator(env.settings.MapsDirectory),
		DOSBoxPath:      env.settings.DOSBoxPath,
		DOSBoxArgs:      env.settings.DOSBoxArgs,
		ScriptLines:     defaultDOSBoxScript(),
		EnsureFiles:     buildEnsureFiles(env, chosenMod, host, modGameVersion, versionStr),
	}
	if modGameVersion == nil {
		req.ModGameVersion = &catalog.ModGameVersion{}
	}

	runner := execRunner{verbose: verbose}
	if err := launch.Launch(context.Background(), req, runner, fileExists); err != nil {
		return err
	}

	return recordLaunch(env, host, chosenMod, versionStr, versionTypeStr)
}

// resolveHost picks the host GameVersion from -v, falling back to the
// most recently launched one (spec §9 supplemented feature 1).
func resolveHost(registry *gameversion.Collection, settings *config.Settings) (*gameversion.GameVersion, error) {
	id := gameVersionID
	if id == "" {
		id = settings.LastLaunch.GameVersionID
	}
	if id == "" {
		return nil, fmt.Errorf("duke3dmm: no game version specified; use -v or launch once to set a default")
	}
	host := registry.GetByID(id)
	if host == nil {
		return nil, fmt.Errorf("duke3dmm: unknown game version %q", id)
	}
	return host, nil
}

// selectMod implements the -s/-r/-n precedence from spec §6: an explicit
// search query wins, then --random, then the most recently launched mod.
func selectMod(organized *catalog.OrganizedCollection, settings *config.Settings) (*catalog.ModMatch, error) {
	switch {
	case searchQuery != "":
		return organized.Search(searchQuery)
	case randomMod:
		m := organized.Random()
		if m == nil {
			return nil, fmt.Errorf("duke3dmm: catalog has no mods to choose from")
		}
		return modMatchFor(m)
	case settings.LastLaunch.ModName != "":
		return organized.Search(settings.LastLaunch.ModName)
	default:
		return nil, fmt.Errorf("duke3dmm: no mod specified; use -s, -r, or -n")
	}
}

func modMatchFor(m *catalog.Mod) (*catalog.ModMatch, error) {
	return organizedSearchExact(m)
}

// organizedSearchExact resolves m's preferred version/default type without
// going through a text query, mirroring OrganizedCollection.resolveMatch.
func organizedSearchExact(m *catalog.Mod) (*catalog.ModMatch, error) {
	match := &catalog.ModMatch{ModIndex: -1, VersionIndex: -1, TypeIndex: -1, Mod: m}
	if len(m.Versions) == 0 {
		return match, nil
	}
	vi := 0
	if m.PreferredVersion != "" {
		for i, v := range m.Versions {
			if strutil.EqualFold(v.Version, m.PreferredVersion) {
				vi = i
				break
			}
		}
	}
	match.VersionIndex = vi
	match.Version = &m.Versions[vi]
	if len(match.Version.Types) == 0 {
		return match, nil
	}
	ti := 0
	if m.DefaultVersionType != "" {
		for i, t := range match.Version.Types {
			if strutil.EqualFold(t.Type, m.DefaultVersionType) {
				ti = i
				break
			}
		}
	}
	match.TypeIndex = ti
	match.Type = &match.Version.Types[ti]
	return match, nil
}

// applyExplicitOverrides layers -g/-x/-h/--map onto a copy of mgv's file
// list without mutating the catalog itself (spec §6, explicit flags augment
// the resolved ModGameVersion rather than replacing resolution).
func applyExplicitOverrides(mgv *catalog.ModGameVersion) *catalog.ModGameVersion {
	if len(explicitGroups) == 0 && explicitCon == "" && explicitDef == "" && explicitMap == "" {
		return mgv
	}
	files := append([]catalog.ModFile{}, mgv.Files...)
	for _, g := range explicitGroups {
		files = append(files, catalog.ModFile{FileName: g, Type: "grp"})
	}
	if explicitCon != "" {
		files = append(files, catalog.ModFile{FileName: explicitCon, Type: "con"})
	}
	if explicitDef != "" {
		files = append(files, catalog.ModFile{FileName: explicitDef, Type: "def"})
	}
	if explicitMap != "" {
		files = append(files, catalog.ModFile{FileName: explicitMap, Type: "map"})
	}
	return &catalog.ModGameVersion{GameVersionID: mgv.GameVersionID, Files: files}
}

// promptAlternative asks on stdin which alternative engine to use when the
// host can't load the chosen mod (spec §4.6 step 4).
func promptAlternative(choices []gameversion.EngineChoice) (*gameversion.GameVersion, bool) {
	if len(choices) == 0 {
		return nil, false
	}
	fmt.Println("The selected mod is not compatible with the current game version.")
	fmt.Println("Choose an alternative:")
	for i, c := range choices {
		fmt.Printf("  [%d] %s\n", i+1, c.Engine.LongName)
	}
	fmt.Print("Enter choice (blank to cancel): ")

	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	var idx int
	if _, err := fmt.Sscanf(line, "%d", &idx); err != nil || idx < 1 || idx > len(choices) {
		return nil, false
	}
	return choices[idx-1].Engine, true
}

// passthroughArgs returns everything after "--" verbatim, prefixed with the
// engine-level flags -t/--local translate to (spec §6: "-t <Game|Setup|
// Client|Server>", "--local enable local mode").
func passthroughArgs(cmd *cobra.Command, args []string) []string {
	var extra []string
	if sessionType != "" {
		extra = append(extra, "-t", sessionType)
	}
	if localMode {
		extra = append(extra, "-netlocal")
	}

	idx := cmd.ArgsLenAtDash()
	if idx < 0 {
		return extra
	}
	return append(extra, args[idx:]...)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mapLocator searches the configured maps directory for mapFileName;
// launch.Launch looks in the game directory itself before calling it.
func mapLocator(mapsDir string) launch.MapLocator {
	return func(mapFileName string) (string, bool) {
		if mapFileName == "" {
			return "", false
		}
		candidate := filepath.Join(mapsDir, mapFileName)
		if fileExists(candidate) {
			return candidate, true
		}
		return "", false
	}
}

// defaultDOSBoxScript is the mount-then-run template used for every
// DOSBox-hosted engine (spec §8 scenario 3): mount the game directory as
// drive C, then run the engine with the assembled arguments.
func defaultDOSBoxScript() []string {
	return []string{
		`mount c $GAMEPATH$`,
		`c:`,
		`$DUKE3D$ $GROUP$ $DEF$ $CON$ $MAP$ $ARGUMENTS$`,
		`exit`,
	}
}

// execRunner implements launch.ProcessRunner by handing the assembled
// command line to the host shell (spec §6 callback `runProcess`).
type execRunner struct {
	verbose bool
}

func (r execRunner) Run(ctx context.Context, command string) error {
	if r.verbose {
		fmt.Println(colorYellow("running: " + command))
	}
	c := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// recordLaunch persists the most-recently-launched selection (so a bare
// `duke3dmm` repeats it) and appends to the launch history table.
func recordLaunch(env *environment, host *gameversion.GameVersion, mod *catalog.Mod, version, versionType string) error {
	env.settings.LastLaunch.GameVersionID = host.ID
	if mod != nil {
		env.settings.LastLaunch.ModName = mod.Name
		env.settings.LastLaunch.ModVersion = version
		env.settings.LastLaunch.ModVersionType = versionType
	}
	if err := env.settings.Save(env.configDir); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	rec := db.LaunchRecord{
		LaunchID:       uuid.NewString(),
		GameVersionID:  host.ID,
		ModVersionType: versionType,
		LaunchedAt:     time.Now(),
	}
	if mod != nil {
		rec.ModName = mod.Name
		rec.ModVersion = version
	}
	return env.db.RecordLaunch(rec)
}
