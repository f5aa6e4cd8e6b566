package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// runHash implements the --hash-new/--hash-all flags (spec §6): walk the
// configured mods and maps directories and (re)compute SHA-1 for every file
// found, using the on-disk cache unless force is set.
func runHash(cmd *cobra.Command, env *environment, force bool) error {
	var paths []string
	for _, dir := range []string{env.settings.ModsDirectory, env.settings.MapsDirectory} {
		if dir == "" {
			continue
		}
		found, err := walkFiles(dir)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", dir, err)
		}
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		cmd.Println("No files found to hash.")
		return nil
	}

	hashes, err := env.db.HashFiles(context.Background(), paths, force, 4)
	if err != nil {
		return fmt.Errorf("hashing files: %w", err)
	}

	cmd.Printf("Hashed %d file(s).\n", len(hashes))
	if verbose {
		for _, p := range paths {
			if sum, ok := hashes[p]; ok {
				cmd.Printf("  %s  %s\n", sum, p)
			}
		}
	}
	return nil
}

func walkFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return paths, nil
}
