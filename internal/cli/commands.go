package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/echoverse/echo-web/internal/dashboard"
	"github.com/echoverse/echo-web/internal/domain"
	"github.com/echoverse/echo-web/internal/service"
)

func newCategoriesCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Long:  "List the active categories, or every category with --all.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.context(cmd)

			var (
				categories []domain.Category
				err        error
			)
			if all {
				categories, err = a.client.ListCategories(ctx)
			} else {
				categories, err = a.client.Categories(ctx)
			}
			if err != nil {
				return err
			}

			return a.render(categories, func(w *tabwriter.Writer) {
				row(w, "SLUG", "NAME", "STATUS", "PUBLIC", "ITEMS", "ICON")
				for i := range categories {
					c := &categories[i]
					public := "no"
					if c.IsActive() {
						public = "yes"
					}
					row(w, c.PathKey(), c.Name, c.Status, public, c.ItemCount, c.DisplayIcon())
				}
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive categories")
	return cmd
}

func newItemsCommand(a *app) *cobra.Command {
	var q service.CategoryPageQuery

	cmd := &cobra.Command{
		Use:   "items <category-slug>",
		Short: "List the items of a category",
		Long: `List the items of a category with the same filters as the category page.

Examples:
  catalogctl items movies --sort rating
  catalogctl items games --search halo --rating 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.catalog.CategoryPage(a.context(cmd), args[0], q)
			if err != nil {
				return err
			}

			return a.render(view, func(w *tabwriter.Writer) {
				if view.Empty != "" {
					fmt.Fprintln(w, view.Empty)
					return
				}
				row(w, "SLUG", "TITLE", "RATING", "", "FEATURED")
				for _, it := range view.Items {
					featured := ""
					if it.Featured {
						featured = "yes"
					}
					row(w, it.Slug, it.Title, formatRating(it.Rating), stars(it.Stars), featured)
				}
				fmt.Fprintf(w, "\n%d of %d items\n", view.Shown, view.Total)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&q.Search, "search", "", "Match title or description")
	flags.StringVar(&q.Category, "category", "", "Restrict to a category id")
	flags.StringVar(&q.Rating, "rating", "", "Minimum rounded rating (1-5)")
	flags.StringVar(&q.Sort, "sort", "", "Sort key: title, rating, newest or oldest")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <category-slug> <item-slug>",
		Short: "Show one item with its rating breakdown",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.catalog.ItemPage(a.context(cmd), args[0], args[1])
			if err != nil {
				return err
			}

			it := view.Item
			return a.render(view, func(w *tabwriter.Writer) {
				row(w, "Title:", it.Title)
				row(w, "Category:", view.Category.Name)
				row(w, "Status:", it.Status)
				row(w, "Rating:", formatRating(it.DisplayRating)+" "+stars(it.Stars))
				if it.ReleaseDate != "" {
					row(w, "Released:", it.ReleaseDate)
				}
				if it.Developer != "" {
					row(w, "Developer:", it.Developer)
				}
				for _, bar := range it.Breakdown {
					row(w, "  "+bar.Label+":", fmt.Sprintf("%.1f", bar.Value))
				}
				if len(view.Related) > 0 {
					fmt.Fprintln(w)
					row(w, "RELATED", "RATING")
					for _, rel := range view.Related {
						row(w, rel.Title, formatRating(rel.Rating))
					}
				}
			})
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search items across all categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.catalog.Search(a.context(cmd), args[0])
			if err != nil {
				return err
			}

			return a.render(view, func(w *tabwriter.Writer) {
				row(w, "TITLE", "CATEGORY", "RATING", "PATH")
				for _, it := range view.Results {
					row(w, it.Title, it.CategoryName, formatRating(it.Rating), it.Href)
				}
			})
		},
	}
}

func newBreadcrumbCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "breadcrumb <path>",
		Short: "Resolve the breadcrumb trail for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			crumbs := a.catalog.Breadcrumbs(a.context(cmd), args[0])

			return a.render(crumbs, func(w *tabwriter.Writer) {
				for _, c := range crumbs {
					marker := ""
					if c.Current {
						marker = "*"
					}
					row(w, c.Label, c.Href, marker)
				}
			})
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := dashboard.NewPoller(a.client, 0, a.logger).Refresh(a.context(cmd))
			if err != nil {
				return err
			}

			return a.render(snap, func(w *tabwriter.Writer) {
				row(w, "", "TOTAL", "ACTIVE", "DRAFT", "FEATURED")
				row(w, "Categories", snap.Categories.Total, snap.Categories.Active, "-", "-")
				row(w, "Items", snap.Items.Total, snap.Items.Active, snap.Items.Draft, snap.Items.Featured)
			})
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.out, "catalogctl %s (commit %s)\n", Version, GitCommit)
		},
	}
}
