// ABOUTME: The blocks command group: list registered block types, export and import definitions.
// ABOUTME: Listing runs the same registration pass the server runs per request.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2389/blockyard/internal/blocks"
	"github.com/2389/blockyard/internal/config"
	"github.com/2389/blockyard/internal/registry"
	"github.com/2389/blockyard/internal/seed"
	"github.com/2389/blockyard/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type column struct {
	title string
	width int
}

var listColumns = []column{
	{"NAME", 28},
	{"TITLE", 24},
	{"CATEGORY", 16},
	{"MODE", 8},
	{"ICON", 20},
}

func newBlocksCmd(cfg *config.Config) *cobra.Command {
	blocksCmd := &cobra.Command{
		Use:   "blocks",
		Short: "Inspect, export and import block definitions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the block types a registration pass produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(s *store.Store) error {
				reg, pass, err := registry.Build(cmd.Context(), blocks.NewRegistrar(newLoader(cfg, s)), nil)
				if err != nil {
					return err
				}
				printBlocks(cmd.OutOrStdout(), reg.All(), pass.Duplicates)
				return nil
			})
		},
	}

	var all bool
	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write block definitions as a YAML catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(s *store.Store) error {
				q := store.DefinitionQuery{Status: blocks.StatusPublish}
				if all {
					q.Status = ""
				}
				defs, err := s.ListDefinitions(cmd.Context(), q)
				if err != nil {
					return err
				}
				data := make([]seed.DefinitionData, 0, len(defs))
				for _, def := range defs {
					data = append(data, seed.FromDefinition(def))
				}

				if output == "" || output == "-" {
					return seed.WriteYAML(cmd.OutOrStdout(), data)
				}
				return exportFile(output, data)
			})
		},
	}
	exportCmd.Flags().BoolVarP(&all, "all", "a", false, "Include drafts")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create block definitions from a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			defs, err := seed.ReadYAML(f)
			if err != nil {
				return err
			}
			return withStore(cfg, func(s *store.Store) error {
				created, err := seed.Seed(cmd.Context(), s, defs)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d block definitions\n", created)
				return nil
			})
		},
	}

	blocksCmd.AddCommand(listCmd, exportCmd, importCmd)
	return blocksCmd
}

// exportFile writes the catalog to path. A failed close is reported.
func exportFile(path string, data []seed.DefinitionData) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return seed.WriteYAML(f, data)
}

func printBlocks(w io.Writer, descriptors []blocks.Descriptor, duplicates []string) {
	if len(descriptors) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No published block definitions."))
		return
	}

	header := make([]string, len(listColumns))
	for i, c := range listColumns {
		header[i] = headerStyle.Width(c.width).Render(c.title)
	}
	fmt.Fprintln(w, strings.Join(header, " "))

	for _, d := range descriptors {
		icon := d.Icon.Value
		if d.Icon.Kind == blocks.IconSVG {
			icon = "(svg)"
		}
		cells := []string{
			nameStyle.Width(listColumns[0].width).Render(truncate(d.Name, listColumns[0].width)),
			lipgloss.NewStyle().Width(listColumns[1].width).Render(truncate(d.Title, listColumns[1].width)),
			lipgloss.NewStyle().Width(listColumns[2].width).Render(truncate(d.Category, listColumns[2].width)),
			lipgloss.NewStyle().Width(listColumns[3].width).Render(string(d.Mode)),
			dimStyle.Width(listColumns[4].width).Render(truncate(icon, listColumns[4].width)),
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}

	for _, name := range duplicates {
		fmt.Fprintln(w, warnStyle.Render("duplicate slug: "+name+" is defined more than once; the last definition wins"))
	}
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
