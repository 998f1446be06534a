package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frinky/devlog/internal/share"
)

var shareOutDir string

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Writes only the social-preview redirect pages",
	Long: `The share command writes <kind>/<slug>/index.html for every game and
post. Each page carries Open Graph and Twitter card tags and redirects to
the entry's #detail-<kind>-<slug> fragment on the site. Copy the output to
the web root so links like /game/<slug> unfurl with a preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		gen, err := share.NewGenerator(appConfig, logger)
		if err != nil {
			return err
		}

		out := shareOutDir
		if out == "" {
			out = appConfig.OutputDir
		}
		n, err := gen.Generate(store, out)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Generated %d share pages in %s\n", n, out)
		if posts := store.Posts(); len(posts) > 0 {
			fmt.Fprintf(w, "  share: %s/post/%s\n", appConfig.SiteURL(), posts[0].Slug)
		}
		if games := store.Games(); len(games) > 0 {
			fmt.Fprintf(w, "  share: %s/game/%s\n", appConfig.SiteURL(), games[0].Slug)
		}
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVarP(&shareOutDir, "out", "o", "", "directory for the share pages (default is the output directory)")
	rootCmd.AddCommand(shareCmd)
}
