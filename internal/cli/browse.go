package cli

import (
	"fmt"

	"github.com/niksmo/catalog/internal/core/form"
	"github.com/niksmo/catalog/internal/core/reporter"
	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	var search, category, minPrice, maxPrice string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the products matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Catalog()
			if err := store.Load(contextOf(cmd)); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), store.Report().ErrorMessage())
				return ErrReported
			}

			store.SetSearchTerm(search)
			store.SetCategory(category)
			store.SetPriceRange(minPrice, maxPrice)

			renderProducts(cmd.OutOrStdout(), store.Visible())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&search, "search", "", "case-insensitive name substring")
	flags.StringVar(&category, "category", "", "exact category")
	flags.StringVar(&minPrice, "min-price", "", "lower price bound, inclusive")
	flags.StringVar(&maxPrice, "max-price", "", "upper price bound, inclusive")
	return cmd
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the loaded products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.Catalog()
			if err := store.Load(contextOf(cmd)); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), store.Report().ErrorMessage())
				return ErrReported
			}
			for _, category := range store.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), category)
			}
			return nil
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var report reporter.Slot
			p, err := c.app.Service().Product(contextOf(cmd), args[0], &report)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), report.ErrorMessage())
				return ErrReported
			}
			renderProduct(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func (c *cli) reviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <product-id>",
		Short: "List the reviews of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := form.NewTarget()
			t.SetID(args[0])
			reviews, err := c.app.Service().Reviews(contextOf(cmd), t)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), t.Report().ErrorMessage())
				return ErrReported
			}
			renderReviews(cmd.OutOrStdout(), reviews)
			return nil
		},
	}
}
