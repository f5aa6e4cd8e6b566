package gameversion

// DefaultGameVersions returns the sixteen built-in engine definitions,
// grounded verbatim on original_source/Source/Game/GameVersion.cpp's
// DEFAULT_GAME_VERSIONS table (spec §4.3). Callers get a fresh slice of
// freshly allocated GameVersion values each call so registries never share
// mutable state.
func DefaultGameVersions() []*GameVersion {
	return []*GameVersion{
		lameDuke(),
		originalBeta(),
		originalRegular(),
		originalPlutonium(),
		originalAtomic(),
		jfDuke3D(),
		eDuke32(),
		netDuke32(),
		raze(),
		redNukem(),
		belgianChocolateDuke3D(),
		duke3dw(),
		pkDuke3D(),
		xDuke(),
		rDuke(),
		duke3dW32(),
	}
}

func ids(values ...string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

func lameDuke() *GameVersion {
	return &GameVersion{
		ID:                   "lameduke",
		LongName:             "Duke Nukem 3D Beta 1.3.95 (LameDuke)",
		ShortName:            "LameDuke",
		GameExecutableName:   "D3D.EXE",
		SetupExecutableName:  "SETUP.EXE",
		ModDirectoryName:     "LameDuke",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      0,
		RecordDemoArgumentFlag: "/r",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: false,
		RequiresGroupFileExtraction: true,
		RequiresDOSBox:       true,
		SupportedOperatingSystems: ids("dos"),
		Website:              "https://www.dukenukem.com",
	}
}

func originalBeta() *GameVersion {
	return &GameVersion{
		ID:                   "beta",
		LongName:             "Duke Nukem 3D Beta 0.99",
		ShortName:            "Duke 3D Beta 0.99",
		GameExecutableName:   "DUKE3D.EXE",
		SetupExecutableName:  "SETUP.EXE",
		ModDirectoryName:     "Beta",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      0,
		RecordDemoArgumentFlag: "/r",
		PlayDemoArgumentFlag: "/t",
		MapFileArgumentFlag:  "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: false,
		RequiresDOSBox:       true,
		SupportedOperatingSystems: ids("dos"),
		CompatibleGameVersionIDs: ids("regular"),
		Website:              "https://www.dukenukem.com",
		Notes:                "Has extremely poor support for mods. Does not function properly out of the box.",
	}
}

func originalRegular() *GameVersion {
	return &GameVersion{
		ID:                   "regular",
		LongName:             "Duke Nukem 3D 1.3D",
		ShortName:            "Duke 3D 1.3D",
		GameExecutableName:   "DUKE3D.EXE",
		SetupExecutableName:  "SETUP.EXE",
		GroupFileInstallPath: "",
		ModDirectoryName:     "Regular",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		DisableSoundArgumentFlag: "/ns",
		DisableMusicArgumentFlag: "/nm",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		RequiresCombinedGroup: true,
		RequiresDOSBox:       true,
		SupportedOperatingSystems: ids("dos"),
		CompatibleGameVersionIDs: ids("beta"),
		Website:              "https://www.dukenukem.com",
	}
}

func originalPlutonium() *GameVersion {
	return &GameVersion{
		ID:                   "plutonium",
		LongName:             "Duke Nukem 3D: Plutonium Pak 1.4",
		ShortName:            "Plutonium Pak",
		GameExecutableName:   "DUKE3D.EXE",
		SetupExecutableName:  "SETUP.EXE",
		ModDirectoryName:     "PlutPak",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		RequiresDOSBox:       true,
		SupportedOperatingSystems: ids("dos"),
		CompatibleGameVersionIDs: ids("atomic"),
		Website:              "https://www.dukenukem.com",
		Notes:                "Virtually identical to Duke Nukem 3D Atomic Edition.",
	}
}

func originalAtomic() *GameVersion {
	return &GameVersion{
		ID:                   "atomic",
		LongName:             "Duke Nukem 3D: Atomic Edition 1.5",
		ShortName:            "Atomic Edition",
		GameExecutableName:   "DUKE3D.EXE",
		SetupExecutableName:  "SETUP.EXE",
		ModDirectoryName:     "Atomic",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		WorldTourGroupSupported: true,
		RequiresDOSBox:       true,
		SupportedOperatingSystems: ids("dos"),
		CompatibleGameVersionIDs: ids("plutonium"),
		Website:              "https://www.dukenukem.com",
	}
}

func jfDuke3D() *GameVersion {
	return &GameVersion{
		ID:                   "jfduke3d",
		LongName:             "JFDuke3D",
		ShortName:            "JFDuke3D",
		GameExecutableName:   "duke3d.exe",
		ModDirectoryName:     "JFDuke3D",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		WorldTourGroupSupported: true,
		SupportedOperatingSystems: ids("windows", "macos"),
		CompatibleGameVersionIDs: ids("regular", "plutonium", "atomic"),
		Website:              "http://www.jonof.id.au/jfduke3d",
		SourceCodeURL:        "https://github.com/jonof/jfduke3d",
	}
}

func eDuke32() *GameVersion {
	return &GameVersion{
		ID:                   "eduke32",
		LongName:             "eDuke32",
		ShortName:            "eDuke32",
		GameExecutableName:   "eduke32.exe",
		ModDirectoryName:     "eDuke32",
		ConFileArgumentFlag:  "-x ",
		GroupFileArgumentFlag: "-g ",
		DefFileArgumentFlag:  "-h ",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "-v",
		LevelArgumentFlag:    "-l",
		SkillArgumentFlag:    "-s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "-r",
		DisableSoundArgumentFlag: "-d ",
		RespawnArgumentFlag:  "-t",
		WeaponOrderArgumentFlag: "-u",
		DisableMonstersArgumentFlag: "-m",
		LocalWorkingDirectory: false,
		RelativeConFilePath:   true,
		SupportsSubdirectories: true,
		WorldTourGroupSupported: true,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("regular", "plutonium", "atomic", "jfduke3d"),
		Website:              "https://www.eduke32.com",
		SourceCodeURL:        "https://voidpoint.io/terminx/eduke32",
	}
}

func netDuke32() *GameVersion {
	return &GameVersion{
		ID:                   "netduke32",
		LongName:             "NetDuke32",
		ShortName:            "NetDuke32",
		GameExecutableName:   "netduke32.exe",
		ModDirectoryName:     "NetDuke",
		ConFileArgumentFlag:  "-x ",
		GroupFileArgumentFlag: "-g ",
		DefFileArgumentFlag:  "-h ",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "-v",
		LevelArgumentFlag:    "-l",
		SkillArgumentFlag:    "-s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "-r",
		DisableSoundArgumentFlag: "-d ",
		RespawnArgumentFlag:  "-t",
		WeaponOrderArgumentFlag: "-u",
		DisableMonstersArgumentFlag: "-m",
		LocalWorkingDirectory: false,
		RelativeConFilePath:   true,
		SupportsSubdirectories: true,
		WorldTourGroupSupported: true,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("regular", "plutonium", "atomic", "jfduke3d", "eduke32"),
		Website:              "https://wiki.eduke32.com/wiki/NetDuke32",
		SourceCodeURL:        "https://voidpoint.io/StrikerTheHedgefox/eduke32-csrefactor/-/tree/master",
	}
}

func raze() *GameVersion {
	return &GameVersion{
		ID:                   "raze",
		LongName:             "Raze",
		ShortName:            "Raze",
		GameExecutableName:   "raze.exe",
		ModDirectoryName:     "Raze",
		ConFileArgumentFlag:  "-x ",
		GroupFileArgumentFlag: "-g ",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "-v",
		LevelArgumentFlag:    "-l",
		SkillArgumentFlag:    "-s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "-r",
		DisableSoundArgumentFlag: "-d ",
		RespawnArgumentFlag:  "-t",
		WeaponOrderArgumentFlag: "-u",
		DisableMonstersArgumentFlag: "-m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		WorldTourGroupSupported: true,
		SupportedOperatingSystems: ids("windows", "linux", "macos"),
		CompatibleGameVersionIDs: ids("plutonium", "atomic", "jfduke3d"),
		Website:              "https://raze.zdoom.org/about",
		SourceCodeURL:        "https://github.com/coelckers/Raze",
	}
}

func redNukem() *GameVersion {
	return &GameVersion{
		ID:                   "rednukem",
		LongName:             "RedNukem",
		ShortName:            "RedNukem",
		GameExecutableName:   "rednukem.exe",
		ModDirectoryName:     "RedNukem",
		ConFileArgumentFlag:  "-x ",
		GroupFileArgumentFlag: "-g ",
		DefFileArgumentFlag:  "-h ",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "-v",
		LevelArgumentFlag:    "-l",
		SkillArgumentFlag:    "-s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "-r",
		DisableSoundArgumentFlag: "-d ",
		RespawnArgumentFlag:  "-t",
		WeaponOrderArgumentFlag: "-u",
		DisableMonstersArgumentFlag: "-m",
		LocalWorkingDirectory: false,
		RelativeConFilePath:   true,
		SupportsSubdirectories: true,
		WorldTourGroupSupported: true,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("plutonium", "atomic", "jfduke3d"),
		Website:              "https://lerppu.net/wannabethesis",
		SourceCodeURL:        "https://github.com/nukeykt/NRedneck",
	}
}

func belgianChocolateDuke3D() *GameVersion {
	return &GameVersion{
		ID:                   "belgian",
		LongName:             "Belgian Chocolate Duke Nukem 3D",
		ShortName:            "Belgian Chocolate Duke3D",
		GameExecutableName:   "ChocoDuke3D.64.exe",
		ModDirectoryName:     "Belgian",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: false,
		SupportedOperatingSystems: ids("windows", "linux", "macos"),
		CompatibleGameVersionIDs: ids("regular", "plutonium", "atomic"),
		SourceCodeURL:        "https://github.com/GPSnoopy/BelgianChocolateDuke3D",
	}
}

func duke3dw() *GameVersion {
	return &GameVersion{
		ID:                   "duke3dw",
		LongName:             "Duke3dw",
		ShortName:            "Duke3dw",
		GameExecutableName:   "Duke3dw.exe",
		ModDirectoryName:     "Duke3dw",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("regular", "plutonium", "atomic", "jfduke3d"),
		Website:              "http://www.proasm.com/duke/Duke3dw.html",
	}
}

func pkDuke3D() *GameVersion {
	return &GameVersion{
		ID:                   "pkduke3d",
		LongName:             "pkDuke3D",
		ShortName:            "pkDuke3D",
		GameExecutableName:   "pkDuke3d.exe",
		ModDirectoryName:     "pkDuke3D",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: true,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("regular", "plutonium", "atomic", "jfduke3d"),
		Website:              "https://bitbucket.org/pogokeen/pkduke3d/downloads",
		SourceCodeURL:        "https://bitbucket.org/pogokeen/pkduke3d",
		Notes:                "Has some issues running mods, such as missing episode names.",
	}
}

func xDuke() *GameVersion {
	return &GameVersion{
		ID:                   "xduke",
		LongName:             "xDuke",
		ShortName:            "xDuke",
		GameExecutableName:   "duke3d_w32.exe",
		ModDirectoryName:     "xDuke",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: false,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("plutonium", "atomic"),
		Website:              "http://vision.gel.ulaval.ca/~klein/duke3d",
	}
}

func rDuke() *GameVersion {
	return &GameVersion{
		ID:                   "rduke",
		LongName:             "rDuke",
		ShortName:            "rDuke",
		GameExecutableName:   "rduke_r10.exe",
		ModDirectoryName:     "rDuke",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: false,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("plutonium", "atomic"),
		SourceCodeURL:        "https://github.com/radar-duker/radars-xduke-fork",
	}
}

func duke3dW32() *GameVersion {
	return &GameVersion{
		ID:                   "duke3d_w32",
		LongName:             "Duke3d_w32",
		ShortName:            "Duke3d_w32",
		GameExecutableName:   "duke3d_w32.exe",
		ModDirectoryName:     "Duke_w32",
		ConFileArgumentFlag:  "/x",
		GroupFileArgumentFlag: "/g",
		MapFileArgumentFlag:  "-map ",
		EpisodeArgumentFlag:  "/v",
		LevelArgumentFlag:    "/l",
		SkillArgumentFlag:    "/s",
		SkillStartValue:      1,
		RecordDemoArgumentFlag: "/r",
		DisableSoundArgumentFlag: "/d",
		RespawnArgumentFlag:  "/t",
		WeaponOrderArgumentFlag: "/u",
		DisableMonstersArgumentFlag: "/m",
		LocalWorkingDirectory: true,
		SupportsSubdirectories: false,
		SupportedOperatingSystems: ids("windows"),
		CompatibleGameVersionIDs: ids("plutonium", "atomic"),
		Website:              "http://www.rancidmeat.com/project.php3?id=1",
	}
}
