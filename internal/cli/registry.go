package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) registryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the repository registry",
	}
	cmd.AddCommand(c.registryListCommand())
	return cmd
}

func (c *CLI) registryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered repositories and their cached versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			items, err := pickerItems(cmd.Context(), a)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				printWarning("No repositories registered in %s", a.cfg.Registry.Path)
				return nil
			}
			now := time.Now()
			for _, it := range items {
				version := StyleDim.Render("not cached")
				if it.LatestVersion != "" {
					version = StyleNumber.Render(it.LatestVersion) + StyleDim.Render(" · "+formatRelativeTime(it.LastChecked, now))
				}
				printItem(it.Slug, version)
			}
			return nil
		},
	}
}

// pickerItems lists the registered slugs with whatever the store has cached
// for them, sorted by slug.
func pickerItems(ctx context.Context, a *app) ([]repoItem, error) {
	slugs, err := a.registry.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	cached := make(map[string]repoItem)
	for _, r := range a.store.Records(ctx) {
		if r.HasCachedVersion() {
			cached[r.Slug] = repoItem{Slug: r.Slug, LatestVersion: r.LatestVersion, LastChecked: r.LastCheckedTimestamp}
		}
	}
	items := make([]repoItem, 0, len(slugs))
	for _, s := range slugs {
		if it, ok := cached[s]; ok {
			items = append(items, it)
			continue
		}
		items = append(items, repoItem{Slug: s})
	}
	return items, nil
}
