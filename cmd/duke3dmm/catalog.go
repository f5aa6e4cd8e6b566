package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"duke3dmm/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the mod catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every mod in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog the same way -s does",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSearch,
}

var catalogInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show download and image sizes for one mod",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogInfo,
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogInfoCmd)
	rootCmd.AddCommand(catalogCmd)
}

type catalogModJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Website string `json:"website,omitempty"`
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	col, err := env.loadCatalog()
	if err != nil {
		return fmt.Errorf("loading mod catalog: %w", err)
	}
	mods := col.Mods()

	if jsonOutput {
		out := make([]catalogModJSON, len(mods))
		for i, m := range mods {
			out[i] = catalogModJSON{ID: m.ID, Name: m.Name, Type: m.Type, Website: m.Website}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(mods) == 0 {
		cmd.Println("Catalog is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tVERSIONS")
	for _, m := range mods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Type, len(m.Versions))
	}
	return w.Flush()
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	col, err := env.loadCatalog()
	if err != nil {
		return fmt.Errorf("loading mod catalog: %w", err)
	}
	organized := catalog.NewOrganizedCollection(col, catalog.GroupByGameVersion)

	match, err := organized.Search(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		type result struct {
			Mod         string `json:"mod"`
			Version     string `json:"version"`
			VersionType string `json:"version_type"`
		}
		r := result{Mod: match.Mod.Name}
		if match.Version != nil {
			r.Version = match.Version.Version
		}
		if match.Type != nil {
			r.VersionType = match.Type.Type
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	cmd.Printf("%s", match.Mod.Name)
	if match.Version != nil && match.Version.Version != "" {
		cmd.Printf(" v%s", match.Version.Version)
	}
	if match.Type != nil && match.Type.Type != "" {
		cmd.Printf(" (%s)", match.Type.Type)
	}
	cmd.Println()
	return nil
}

// runCatalogInfo prints a mod's download and image footprint with
// human-readable byte sizes, the detail catalog list/search intentionally
// leave out.
func runCatalogInfo(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	col, err := env.loadCatalog()
	if err != nil {
		return fmt.Errorf("loading mod catalog: %w", err)
	}

	m := col.GetModWithID(args[0])
	if m == nil {
		return fmt.Errorf("duke3dmm: no mod with id %q", args[0])
	}

	if jsonOutput {
		data, err := m.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding mod: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("formatting mod JSON: %w", err)
		}
		cmd.Println(buf.String())
		return nil
	}

	cmd.Printf("%s (%s)\n", m.Name, m.ID)
	if m.Website != "" {
		cmd.Println(m.Website)
	}
	cmd.Println()

	if len(m.Downloads) > 0 {
		cmd.Println("Downloads:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tTYPE\tPART")
		for _, d := range m.Downloads {
			part := ""
			if d.PartCount > 0 {
				part = fmt.Sprintf("%d/%d", d.PartNumber, d.PartCount)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.FileName, d.Type, part)
		}
		w.Flush()
	}

	var imageBytes int64
	for _, img := range append(append([]catalog.ModImage{}, m.Images...), m.Screenshots...) {
		imageBytes += img.FileSize
	}
	if imageBytes > 0 {
		cmd.Printf("\nImages and screenshots: %d files, %s total\n",
			len(m.Images)+len(m.Screenshots), humanize.Bytes(uint64(imageBytes)))
	}

	return nil
}
