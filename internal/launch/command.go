package launch

import (
	"path/filepath"
	"strings"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/gameversion"
)

const (
	KeyModDir = "MODDIR"
	KeyMap    = "MAP"
)

// BuildScriptArguments assembles the ScriptArguments dictionary for one
// launch (spec §4.7 step c). modsSymlinkPath/mapsSymlinkPath are the paths
// of the MODSDIR/MAPSDIR symlinks inside the game directory, which Stage
// creates (step e.1); resolvedMap is
// the map file's final located path, or "" if the mod ships none.
func BuildScriptArguments(
	host *gameversion.GameVersion,
	mgv *catalog.ModGameVersion,
	modsSymlinkPath, mapsSymlinkPath string,
	resolvedMap string,
	ip, port string,
	passthroughArgs []string,
) *ScriptArguments {
	args := NewScriptArguments()
	args.Set(KeyGamePath, host.GamePath)
	args.Set(KeyDuke3D, host.GameExecutableName)
	if host.SetupExecutableName != "" {
		args.Set(KeySetup, host.SetupExecutableName)
	}
	args.Set(KeyGroupFlag, host.GroupFileArgumentFlag)
	args.Set(KeyConFlag, host.ConFileArgumentFlag)
	args.Set(KeyDefFlag, host.DefFileArgumentFlag)
	args.Set(KeyMapFlag, host.MapFileArgumentFlag)
	args.Set(KeyModsDir, modsSymlinkPath)
	args.Set(KeyMapsDir, mapsSymlinkPath)
	args.Set(KeyModDir, host.ModDirectoryName)

	for _, f := range mgv.Files {
		switch f.Type {
		case "grp", "zip":
			args.Add(KeyGroup, filepath.Join(modsSymlinkPath, host.ModDirectoryName, f.FileName))
		case "con":
			if host.RelativeConFilePath {
				args.Set(KeyCon, f.FileName)
			} else {
				args.Set(KeyCon, filepath.Join(modsSymlinkPath, host.ModDirectoryName, f.FileName))
			}
		case "def":
			args.Set(KeyDef, f.FileName)
		}
	}

	if resolvedMap != "" {
		args.Set(KeyMap, resolvedMap)
	}
	if ip != "" {
		args.Set(KeyIP, ip)
	}
	if port != "" {
		args.Set(KeyPort, port)
	}
	if len(passthroughArgs) > 0 {
		args.Set(KeyArguments, strings.Join(passthroughArgs, " "))
	}

	return args
}

// GenerateNativeCommand builds the quoted command line for an engine that
// runs directly, without DOSBox (spec §4.7 step d, "Native engine").
func GenerateNativeCommand(args *ScriptArguments) string {
	var b strings.Builder
	b.WriteString(quote(filepath.Join(args.Get(KeyGamePath), args.Get(KeyDuke3D))))

	for _, group := range args.All(KeyGroup) {
		b.WriteString(" ")
		b.WriteString(args.Get(KeyGroupFlag))
		b.WriteString(group)
	}
	if args.Has(KeyDef) {
		b.WriteString(" ")
		b.WriteString(args.Get(KeyDefFlag))
		b.WriteString(args.Get(KeyDef))
	}
	if args.Has(KeyCon) {
		b.WriteString(" ")
		b.WriteString(args.Get(KeyConFlag))
		b.WriteString(args.Get(KeyCon))
	}
	if args.Has(KeyMap) {
		b.WriteString(" ")
		b.WriteString(args.Get(KeyMapFlag))
		b.WriteString(args.Get(KeyMap))
	}
	if args.Has(KeyArguments) {
		b.WriteString(" ")
		b.WriteString(args.Get(KeyArguments))
	}

	args.Set(KeyCommand, b.String())
	return b.String()
}

// placeholderToken turns a ScriptArguments key into the `$KEY$` token form
// DOSBox script templates use.
func placeholderToken(key string) string {
	return "$" + key + "$"
}

// GenerateDOSBoxCommand substitutes every `$PLACEHOLDER$` token in
// scriptLines from args (multi-valued keys joined with spaces), escapes
// unescaped double-quotes in each resulting line, and assembles the final
// `CALL "<dosbox>" <dosboxArgs> -c "<line>" ...` invocation (spec §4.7 step
// d, "DOSBox-wrapped engine").
func GenerateDOSBoxCommand(dosboxPath, dosboxArgs string, scriptLines []string, args *ScriptArguments) string {
	var b strings.Builder
	b.WriteString("CALL ")
	b.WriteString(quote(dosboxPath))
	if dosboxArgs != "" {
		b.WriteString(" ")
		b.WriteString(dosboxArgs)
	}

	for _, line := range scriptLines {
		substituted := substitutePlaceholders(line, args)
		if strings.TrimSpace(substituted) == "" {
			continue
		}
		b.WriteString(" -c ")
		b.WriteString(quote(escapeQuotes(substituted)))
	}

	command := b.String()
	args.Set(KeyCommand, command)
	return command
}

func substitutePlaceholders(line string, args *ScriptArguments) string {
	for _, key := range args.Keys() {
		line = strings.ReplaceAll(line, placeholderToken(key), args.Joined(key))
	}
	return line
}

func quote(s string) string {
	return `"` + s + `"`
}

// escapeQuotes backslash-escapes any double-quote not already escaped, so
// a substituted script line can be safely wrapped in its own `-c "..."`
// quoting.
func escapeQuotes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
