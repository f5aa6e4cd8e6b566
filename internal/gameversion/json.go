package gameversion

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"

	"duke3dmm/internal/strutil"
)

const (
	fileType          = "Game Versions"
	fileFormatVersion = "1.0.0"
)

var acceptedFileFormat = mustConstraint("~1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

type jsonGameVersion struct {
	ID                          string          `json:"id"`
	LongName                    string          `json:"longName"`
	ShortName                   string          `json:"shortName"`
	Installed                   *time.Time      `json:"installed,omitempty"`
	LastPlayed                  *time.Time      `json:"lastPlayed,omitempty"`
	Base                        bool            `json:"base,omitempty"`
	GamePath                    string          `json:"gamePath,omitempty"`
	GameExecutableName          string          `json:"gameExecutableName"`
	SetupExecutableName         string          `json:"setupExecutableName,omitempty"`
	GroupFileInstallPath        string          `json:"groupFileInstallPath,omitempty"`
	RelativeConFilePath         bool            `json:"relativeConFilePath,omitempty"`
	SupportsSubdirectories      bool            `json:"supportsSubdirectories,omitempty"`
	WorldTourGroupSupported     bool            `json:"worldTourGroupSupported,omitempty"`
	ConFileArgumentFlag         string          `json:"conFileArgumentFlag,omitempty"`
	GroupFileArgumentFlag       string          `json:"groupFileArgumentFlag,omitempty"`
	DefFileArgumentFlag         string          `json:"defFileArgumentFlag,omitempty"`
	MapFileArgumentFlag         string          `json:"mapFileArgumentFlag,omitempty"`
	EpisodeArgumentFlag         string          `json:"episodeArgumentFlag,omitempty"`
	LevelArgumentFlag           string          `json:"levelArgumentFlag,omitempty"`
	SkillArgumentFlag           string          `json:"skillArgumentFlag,omitempty"`
	SkillStartValue             int             `json:"skillValueOffset"`
	RecordDemoArgumentFlag      string          `json:"recordDemoArgumentFlag,omitempty"`
	PlayDemoArgumentFlag        string          `json:"playDemoArgumentFlag,omitempty"`
	RespawnArgumentFlag         string          `json:"respawnModeArgumentFlag,omitempty"`
	WeaponOrderArgumentFlag     string          `json:"weaponSwitchOrderArgumentFlag,omitempty"`
	DisableSoundArgumentFlag    string          `json:"disableSoundArgumentFlag,omitempty"`
	DisableMusicArgumentFlag    string          `json:"disableMusicArgumentFlag,omitempty"`
	DisableMonstersArgumentFlag string          `json:"disableMonstersArgumentFlag,omitempty"`
	RequiresCombinedGroup       bool            `json:"requiresCombinedGroup,omitempty"`
	RequiresGroupFileExtraction bool            `json:"requiresGroupFileExtraction,omitempty"`
	LocalWorkingDirectory       bool            `json:"localWorkingDirectory,omitempty"`
	RequiresDOSBox              bool            `json:"requiresDOSBox,omitempty"`
	ModDirectoryName            string          `json:"modDirectoryName"`
	Website                     string          `json:"website,omitempty"`
	SourceCodeURL               string          `json:"sourceCodeURL,omitempty"`
	SupportedOperatingSystems   []string        `json:"supportedOperatingSystems,omitempty"`
	CompatibleGameVersions      []string        `json:"compatibleGameVersions,omitempty"`
	Notes                       string          `json:"notes,omitempty"`
}

func (gv *GameVersion) toJSON() jsonGameVersion {
	j := jsonGameVersion{
		ID:                          gv.ID,
		LongName:                    gv.LongName,
		ShortName:                   gv.ShortName,
		Installed:                   gv.InstalledTimePoint,
		LastPlayed:                  gv.LastPlayedTimePoint,
		Base:                        gv.Base,
		GamePath:                    gv.GamePath,
		GameExecutableName:          gv.GameExecutableName,
		SetupExecutableName:         gv.SetupExecutableName,
		GroupFileInstallPath:        gv.GroupFileInstallPath,
		RelativeConFilePath:         gv.RelativeConFilePath,
		SupportsSubdirectories:      gv.SupportsSubdirectories,
		WorldTourGroupSupported:     gv.WorldTourGroupSupported,
		ConFileArgumentFlag:         gv.ConFileArgumentFlag,
		GroupFileArgumentFlag:       gv.GroupFileArgumentFlag,
		DefFileArgumentFlag:         gv.DefFileArgumentFlag,
		MapFileArgumentFlag:         gv.MapFileArgumentFlag,
		EpisodeArgumentFlag:         gv.EpisodeArgumentFlag,
		LevelArgumentFlag:           gv.LevelArgumentFlag,
		SkillArgumentFlag:           gv.SkillArgumentFlag,
		SkillStartValue:             gv.SkillStartValue,
		RecordDemoArgumentFlag:      gv.RecordDemoArgumentFlag,
		PlayDemoArgumentFlag:        gv.PlayDemoArgumentFlag,
		RespawnArgumentFlag:         gv.RespawnArgumentFlag,
		WeaponOrderArgumentFlag:     gv.WeaponOrderArgumentFlag,
		DisableSoundArgumentFlag:    gv.DisableSoundArgumentFlag,
		DisableMusicArgumentFlag:    gv.DisableMusicArgumentFlag,
		DisableMonstersArgumentFlag: gv.DisableMonstersArgumentFlag,
		RequiresCombinedGroup:       gv.RequiresCombinedGroup,
		RequiresGroupFileExtraction: gv.RequiresGroupFileExtraction,
		LocalWorkingDirectory:       gv.LocalWorkingDirectory,
		RequiresDOSBox:              gv.RequiresDOSBox,
		ModDirectoryName:            gv.ModDirectoryName,
		Website:                     gv.Website,
		SourceCodeURL:               gv.SourceCodeURL,
		Notes:                       gv.Notes,
	}
	for id, on := range gv.SupportedOperatingSystems {
		if on {
			j.SupportedOperatingSystems = append(j.SupportedOperatingSystems, id)
		}
	}
	for id, on := range gv.CompatibleGameVersionIDs {
		if on {
			j.CompatibleGameVersions = append(j.CompatibleGameVersions, id)
		}
	}
	return j
}

func (j jsonGameVersion) toGameVersion() (*GameVersion, error) {
	if j.ID == "" {
		return nil, fmt.Errorf("game version missing required \"id\" property")
	}
	if j.ModDirectoryName == "" {
		return nil, fmt.Errorf("game version %q missing required \"modDirectoryName\" property", j.ID)
	}
	gv := &GameVersion{
		ID:                          j.ID,
		LongName:                    j.LongName,
		ShortName:                   j.ShortName,
		InstalledTimePoint:          j.Installed,
		LastPlayedTimePoint:         j.LastPlayed,
		Base:                        j.Base,
		GamePath:                    j.GamePath,
		GameExecutableName:          j.GameExecutableName,
		SetupExecutableName:         j.SetupExecutableName,
		GroupFileInstallPath:        j.GroupFileInstallPath,
		RelativeConFilePath:         j.RelativeConFilePath,
		SupportsSubdirectories:      j.SupportsSubdirectories,
		WorldTourGroupSupported:     j.WorldTourGroupSupported,
		ConFileArgumentFlag:         j.ConFileArgumentFlag,
		GroupFileArgumentFlag:       j.GroupFileArgumentFlag,
		DefFileArgumentFlag:         j.DefFileArgumentFlag,
		MapFileArgumentFlag:         j.MapFileArgumentFlag,
		EpisodeArgumentFlag:         j.EpisodeArgumentFlag,
		LevelArgumentFlag:           j.LevelArgumentFlag,
		SkillArgumentFlag:           j.SkillArgumentFlag,
		SkillStartValue:             j.SkillStartValue,
		RecordDemoArgumentFlag:      j.RecordDemoArgumentFlag,
		PlayDemoArgumentFlag:        j.PlayDemoArgumentFlag,
		RespawnArgumentFlag:         j.RespawnArgumentFlag,
		WeaponOrderArgumentFlag:     j.WeaponOrderArgumentFlag,
		DisableSoundArgumentFlag:    j.DisableSoundArgumentFlag,
		DisableMusicArgumentFlag:    j.DisableMusicArgumentFlag,
		DisableMonstersArgumentFlag: j.DisableMonstersArgumentFlag,
		RequiresCombinedGroup:       j.RequiresCombinedGroup,
		RequiresGroupFileExtraction: j.RequiresGroupFileExtraction,
		LocalWorkingDirectory:       j.LocalWorkingDirectory,
		RequiresDOSBox:              j.RequiresDOSBox,
		ModDirectoryName:            j.ModDirectoryName,
		Website:                     j.Website,
		SourceCodeURL:               j.SourceCodeURL,
		Notes:                       j.Notes,
		SupportedOperatingSystems:   ids(j.SupportedOperatingSystems...),
		CompatibleGameVersionIDs:    ids(j.CompatibleGameVersions...),
	}
	if gv.SkillStartValue < 0 || gv.SkillStartValue > 255 {
		return nil, fmt.Errorf("game version %q: skillValueOffset must be <= 255", gv.ID)
	}
	return gv, nil
}

type jsonGameVersionsFile struct {
	FileType          string            `json:"fileType"`
	FileFormatVersion string            `json:"fileFormatVersion"`
	GameVersions      []jsonGameVersion `json:"gameVersions"`
}

func checkFileFormatVersion(wantType, haveType, version string) error {
	if !strutil.EqualFold(haveType, wantType) {
		return fmt.Errorf("unexpected file type %q, expected %q", haveType, wantType)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid fileFormatVersion %q: %w", version, err)
	}
	if !acceptedFileFormat.Check(v) {
		return fmt.Errorf("unsupported game version fileFormatVersion %q", version)
	}
	return nil
}

// LoadFromJSON parses a "Game Versions" JSON document into a fresh
// Collection. A parse error, a fileType/fileFormatVersion mismatch, or any
// malformed, invalid or duplicate entry fails the whole load; no partial
// registry is returned.
func LoadFromJSON(data []byte) (*Collection, error) {
	var file jsonGameVersionsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed game versions file: %w", err)
	}
	if err := checkFileFormatVersion(fileType, file.FileType, file.FileFormatVersion); err != nil {
		return nil, err
	}
	col := NewCollection()
	for _, jgv := range file.GameVersions {
		gv, err := jgv.toGameVersion()
		if err != nil {
			return nil, err
		}
		if err := col.Add(gv); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// ToJSON serializes the registry to a "Game Versions" JSON document.
func (c *Collection) ToJSON() ([]byte, error) {
	file := jsonGameVersionsFile{FileType: fileType, FileFormatVersion: fileFormatVersion}
	for _, gv := range c.versions {
		file.GameVersions = append(file.GameVersions, gv.toJSON())
	}
	return json.MarshalIndent(file, "", "\t")
}

// LoadOrCreateDefault reads path if present, then merges in any of the
// sixteen built-in engines missing from it by id, and writes the merged
// result back out so future runs see the same registry (spec §4.3
// "the registry seeds itself with the built-in set on first run, and
// subsequent runs merge in any new built-ins without disturbing local
// edits").
func LoadOrCreateDefault(path string) (*Collection, error) {
	var col *Collection
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		col, err = LoadFromJSON(data)
		if err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		col = NewCollection()
	default:
		return nil, err
	}

	changed := false
	for _, gv := range DefaultGameVersions() {
		if col.HasGameVersionWithID(gv.ID) {
			continue
		}
		gv.Base = true
		if err := col.Add(gv); err != nil {
			return nil, err
		}
		changed = true
	}

	if changed {
		out, err := col.ToJSON()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return nil, err
		}
	}

	return col, nil
}
