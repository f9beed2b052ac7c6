package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/t1nkr/releasecache/pkg/updatecheck"
)

// errNoRepository is returned when check gets no slug and cannot prompt for one.
var errNoRepository = errors.New("no repository given: pass a slug or run in a terminal to pick one")

func (c *CLI) checkCommand() *cobra.Command {
	var (
		current string
		force   bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "check [repo]",
		Short: "Check a registered repository for a newer release",
		Long: `Run one update check through the cache, exactly as the service would.

Without a repository argument an interactive picker lists the registered
repositories when stdin is a terminal.`,
		Example: `  releasecache check my-addon --current 1.2.0
  releasecache check my-addon --current 1.2.0 --force
  releasecache check`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeSlugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var slug string
			if len(args) == 1 {
				slug = trimSlug(args[0])
			} else {
				if !isTerminal(os.Stdin) {
					return errNoRepository
				}
				items, err := pickerItems(ctx, a)
				if err != nil {
					return err
				}
				slug, err = pickRepository(items, time.Now())
				if err != nil {
					return err
				}
				if slug == "" {
					return nil
				}
			}

			prog := newProgress(c.Logger)
			res, err := a.checker.Check(ctx, updatecheck.Query{
				Slug:           slug,
				CurrentVersion: current,
				Force:          force,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Checked %s", slug))

			if asJSON {
				return printJSON(res)
			}
			printResult(res, current)
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "0.0.0", "version the client is running")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "bypass the cache and ask GitHub")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response body as JSON")
	return cmd
}

// printResult renders a check result for humans.
func printResult(res *updatecheck.Result, current string) {
	r := res.Repository
	if res.UpdateAvailable {
		printSuccess("Update available: %s %s %s", StyleDim.Render(current), iconArrow, StyleHighlight.Render(r.LatestVersion))
	} else {
		printInfo("Up to date at %s", StyleValue.Render(current))
	}
	printKeyValue("Repository", r.Slug)
	printKeyValue("Latest", r.LatestVersion)
	if r.LatestVersionName != "" {
		printKeyValue("Name", r.LatestVersionName)
	}
	printKeyValue("Checked", r.LastCheckedTimestamp.Format(time.DateTime)+" UTC")
	printKeyValue("Served", string(res.Outcome))
	if r.ReleaseURL != "" {
		printKeyValue("Release", StyleLink.Render(r.ReleaseURL))
	}
}
