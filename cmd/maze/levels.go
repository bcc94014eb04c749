package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List level packs and their levels",
	Long: `Display every registered level pack with its levels in play order.
Packs whose levels break the authoring rules are marked INVALID.

Examples:
  maze levels
  maze levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check a directory of YAML levels",
	Long: `Parse and validate every .yaml/.yml file under a directory. Problems
are printed per file; the command exits with status 1 if any were found.

Checks:
  - the file parses and has an id
  - ids are unique
  - obstacles have positive size
  - start and goal lie inside the arena
  - the start position does not overlap an obstacle`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

var flagShowOrder int

var showCmd = &cobra.Command{
	Use:   "show <pack> <level-id>",
	Short: "Print a level as YAML",
	Long: `Print one level of a pack in the YAML level format, ready to be
copied into a custom pack directory.

Examples:
  maze levels show classic pillars
  maze levels show classic bars --order 3 > my-levels/bars.yaml`,
	Args: cobra.ExactArgs(2),
	Run:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&flagShowOrder, "order", 0, "Order field written to the YAML")
	levelsCmd.AddCommand(validateCmd)
	levelsCmd.AddCommand(showCmd)
}

// configBounds returns the authoring bounds of the loaded game config.
func configBounds() levels.Bounds {
	mazeCfg, _ := loadConfig()
	return levels.Bounds{
		Width:      mazeCfg.Arena.Width,
		Height:     mazeCfg.Arena.Height,
		PlayerSize: mazeCfg.Arena.PlayerSize,
	}
}

func runLevels(_ *cobra.Command, _ []string) {
	bounds := configBounds()

	fmt.Println("Level packs:")
	fmt.Println()

	for _, p := range registry.List() {
		catalog, err := registry.Create(p.ID)
		if err != nil {
			fmt.Printf("  %-12s  %s (error: %v)\n", p.ID, p.Title, err)
			continue
		}

		status := ""
		verr := levels.ValidateCatalog(catalog, bounds)
		if verr != nil {
			status = "  INVALID"
		}
		fmt.Printf("  %-12s  %s, %d levels%s\n", p.ID, p.Title, catalog.Count(), status)
		for i, name := range catalog.Names() {
			l, _ := catalog.Level(i)
			fmt.Printf("      %2d. %-16s  %d obstacles\n", i+1, name, len(l.Obstacles))
		}
		if verr != nil {
			fmt.Printf("      ! %v\n", verr)
		}
	}

	fmt.Println()
	fmt.Println("Play with: maze play --pack <id>")
}

func runShow(_ *cobra.Command, args []string) {
	packID, levelID := args[0], args[1]
	requirePack(packID)

	catalog, err := registry.Create(packID)
	if err != nil {
		exitf("%v", err)
	}
	l, err := catalog.ByID(levelID)
	if err != nil {
		ids := make([]string, 0, catalog.Count())
		for i := range catalog.Count() {
			lvl, _ := catalog.Level(i)
			ids = append(ids, lvl.ID)
		}
		exitf("%v: %q in pack %s (have: %s)", err, levelID, packID, strings.Join(ids, ", "))
	}

	data, err := levels.MarshalYAML(l, flagShowOrder)
	if err != nil {
		exitf("encoding level: %v", err)
	}
	os.Stdout.Write(data)
}

func runValidate(_ *cobra.Command, args []string) {
	dir := args[0]
	bounds := configBounds()

	loader := levels.NewLoader(dir)
	seen := make(map[string]string)
	var files, failed int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if d.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}
		files++

		l, err := loader.LoadFile(path)
		if err == nil {
			err = levels.Validate(l, bounds)
		}
		if err == nil {
			if prev, dup := seen[l.ID]; dup {
				err = fmt.Errorf("duplicate id %q (also in %s)", l.ID, prev)
			} else {
				seen[l.ID] = path
			}
		}

		if err != nil {
			failed++
			var verr *levels.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("FAIL  %s\n", path)
				for _, p := range verr.Problems {
					fmt.Printf("        - %s\n", p)
				}
			} else {
				fmt.Printf("FAIL  %s: %v\n", path, err)
			}
			return nil
		}
		fmt.Printf("ok    %s (%s)\n", path, l.ID)
		return nil
	})
	if err != nil {
		exitf("%v", err)
	}

	fmt.Println()
	switch {
	case files == 0:
		exitf("no level files in %s", dir)
	case failed > 0:
		fmt.Printf("%d of %d levels failed\n", failed, files)
		os.Exit(1)
	}
	fmt.Printf("All %d levels valid\n", files)
}
