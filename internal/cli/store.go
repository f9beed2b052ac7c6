package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/t1nkr/releasecache/pkg/repository"
)

func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect or reset the cached release information",
	}
	cmd.AddCommand(c.storeShowCommand())
	cmd.AddCommand(c.storePathCommand())
	cmd.AddCommand(c.storeClearCommand())
	return cmd
}

func (c *CLI) storeShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "show [repo]",
		Short:             "Show cached records",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeSlugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			records := a.store.Records(cmd.Context())
			if len(args) == 1 {
				slug := trimSlug(args[0])
				records = filterRecords(records, slug)
				if len(records) == 0 {
					return fmt.Errorf("no cached record for %q in %s", slug, a.store.Location())
				}
			}

			if asJSON {
				return printJSON(records)
			}
			if len(records) == 0 {
				printInfo("Store %s is empty", StyleValue.Render(a.store.Location()))
				return nil
			}
			fmt.Fprintln(stdout, renderRecords(records, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print records in the stored JSON shape")
	return cmd
}

func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the store is persisted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(stdout, a.store.Location())
			return nil
		},
	}
}

func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached records",
		Long:  `Remove all cached records. The next check of every repository goes to GitHub.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Cleared %s", a.store.Location())
			return nil
		},
	}
}

func filterRecords(records []*repository.Record, slug string) []*repository.Record {
	for _, r := range records {
		if r.Slug == slug {
			return []*repository.Record{r}
		}
	}
	return nil
}

// renderRecords draws records as a table.
func renderRecords(records []*repository.Record, now time.Time) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		latest := r.LatestVersion
		if latest == "" {
			latest = "—"
		}
		checked := "never"
		if r.HasCachedVersion() {
			checked = formatRelativeTime(r.LastCheckedTimestamp, now)
		}
		rows = append(rows, []string{r.Slug, latest, r.LatestVersionName, checked, fmt.Sprintf("%dd", r.CheckFrequencyDays)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Repository", "Latest", "Name", "Checked", "Every").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case 3, 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
