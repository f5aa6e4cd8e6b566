package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"

	"duke3dmm/internal/catalog"
	"duke3dmm/internal/download"
	"duke3dmm/internal/gameversion"
	"duke3dmm/internal/storage/cache"
)

// buildEnsureFiles returns the launch orchestrator's EnsureFiles collaborator
// (spec §6 downloadFile(url, destinationPath)). It's nil whenever there's
// nothing to fetch: --local launches, a no-mod session, every required file
// already on disk, or no configured download source — matching "local mode
// never calls this".
func buildEnsureFiles(env *environment, mod *catalog.Mod, host *gameversion.GameVersion, mgv *catalog.ModGameVersion, version string) func(ctx context.Context) error {
	if localMode || mod == nil || mgv == nil || host == nil || env.settings.DownloadBaseURL == "" {
		return nil
	}

	modDir := filepath.Join(env.settings.ModsDirectory, host.ModDirectoryName)
	needsFetch := false
	for _, f := range mgv.Files {
		if !fileExists(filepath.Join(modDir, f.FileName)) {
			needsFetch = true
			break
		}
	}
	if !needsFetch {
		return nil
	}

	parts := matchingDownloads(mod, mgv.GameVersionID, version)
	if len(parts) == 0 {
		return nil
	}

	return func(ctx context.Context) error {
		return fetchAndStage(ctx, env, mod, host, mgv, parts, modDir)
	}
}

// matchingDownloads returns mod's "Mod Manager Files" downloads scoped to
// gameVersionID/version, ordered by part number for multi-part reassembly.
func matchingDownloads(mod *catalog.Mod, gameVersionID, version string) []catalog.ModDownload {
	var out []catalog.ModDownload
	for _, d := range mod.Downloads {
		if d.Type != "Mod Manager Files" {
			continue
		}
		if d.GameVersionID != "" && d.GameVersionID != gameVersionID {
			continue
		}
		if d.Version != "" && version != "" && d.Version != version {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out
}

// fetchAndStage downloads each part under the cache directory, verifies it
// against the catalog's SHA-1, then reassembles it into modDir: a single
// part is an eDuke32-style zip package to unpack, multiple parts are
// concatenated into one combined group file for requiresCombinedGroup
// engines (spec §4.1 "Multi-part download reassembly").
func fetchAndStage(ctx context.Context, env *environment, mod *catalog.Mod, host *gameversion.GameVersion, mgv *catalog.ModGameVersion, parts []catalog.ModDownload, modDir string) error {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("fetching %s files for %s...", mod.Name, host.LongName))

	dlCache := cache.New(filepath.Join(env.cacheDir, "downloads"))
	fetcher := download.NewFetcher()

	var localParts []string
	for _, d := range parts {
		url := env.settings.DownloadBaseURL + "/" + mod.ID + "/" + d.FileName
		dest := dlCache.FilePath(mgv.GameVersionID, mod.ID, d.FileName)
		if !dlCache.Has(mgv.GameVersionID, mod.ID, d.FileName) {
			if err := fetcher.Fetch(ctx, url, dest); err != nil {
				spinner.Fail(fmt.Sprintf("fetching %s failed", d.FileName))
				return err
			}
		}
		ok, err := download.VerifySHA1(dest, d.SHA1)
		if err != nil {
			spinner.Fail(fmt.Sprintf("verifying %s failed", d.FileName))
			return err
		}
		if !ok {
			spinner.Fail(fmt.Sprintf("%s failed checksum verification", d.FileName))
			return fmt.Errorf("duke3dmm: %s failed checksum verification", d.FileName)
		}
		localParts = append(localParts, dest)
	}

	if len(localParts) == 1 {
		if err := download.ExtractZip(localParts[0], modDir); err != nil {
			spinner.Fail(fmt.Sprintf("unpacking %s failed", mod.Name))
			return err
		}
		spinner.Success(fmt.Sprintf("staged %s", mod.Name))
		return nil
	}

	groupFile := combinedGroupFileName(mgv)
	if groupFile == "" {
		spinner.Fail(fmt.Sprintf("%s has no group file to reassemble multi-part parts into", mod.Name))
		return fmt.Errorf("duke3dmm: %s: no grp-type file in resolved game version to reassemble into", mod.Name)
	}
	if err := download.Concatenate(localParts, filepath.Join(modDir, groupFile)); err != nil {
		spinner.Fail(fmt.Sprintf("reassembling %s failed", mod.Name))
		return err
	}
	spinner.Success(fmt.Sprintf("staged %s (%d-part download)", mod.Name, len(localParts)))
	return nil
}

func combinedGroupFileName(mgv *catalog.ModGameVersion) string {
	for _, f := range mgv.Files {
		if f.Type == "grp" {
			return f.FileName
		}
	}
	return ""
}
