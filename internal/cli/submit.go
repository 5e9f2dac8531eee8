package cli

import (
	"fmt"

	"github.com/niksmo/catalog/internal/core/form"
	"github.com/spf13/cobra"
)

const inputUsage = "field input as name=value, repeatable"

func (c *cli) productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Create, update or delete products",
	}
	cmd.AddCommand(
		c.productCreateCmd(),
		c.productUpdateCmd(),
		c.productDeleteCmd(),
		fieldsCmd(form.NewProductDraft()),
	)
	return cmd
}

func (c *cli) productCreateCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product from the defaults overridden by --set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.NewProductForm()
			if err := applyInputs(f, inputs); err != nil {
				return err
			}
			err := c.app.Service().CreateProduct(contextOf(cmd), f)
			return outcome(cmd, f.Report(), err)
		},
	}
	cmd.Flags().StringArrayVar(&inputs, "set", nil, inputUsage)
	return cmd
}

func (c *cli) productUpdateCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a product, starting from its current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOf(cmd)
			f := form.NewProductForm()
			f.SetID(args[0])

			current, err := c.app.Service().Product(ctx, args[0], f.Report())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), f.Report().ErrorMessage())
				return ErrReported
			}
			f.Draft.Replace(current)

			if err := applyInputs(f, inputs); err != nil {
				return err
			}
			err = c.app.Service().UpdateProduct(ctx, f)
			return outcome(cmd, f.Report(), err)
		},
	}
	cmd.Flags().StringArrayVar(&inputs, "set", nil, inputUsage)
	return cmd
}

func (c *cli) productDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := form.NewTarget()
			t.SetID(args[0])
			err := c.app.Service().DeleteProduct(contextOf(cmd), t)
			return outcome(cmd, t.Report(), err)
		},
	}
}

func (c *cli) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Create, update or delete reviews",
	}
	cmd.AddCommand(
		c.reviewCreateCmd(),
		c.reviewUpdateCmd(),
		c.reviewDeleteCmd(),
		fieldsCmd(form.NewReviewDraft()),
	)
	return cmd
}

func (c *cli) reviewCreateCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.NewReviewForm()
			if err := applyInputs(f, inputs); err != nil {
				return err
			}
			err := c.app.Service().CreateReview(contextOf(cmd), f)
			return outcome(cmd, f.Report(), err)
		},
	}
	cmd.Flags().StringArrayVar(&inputs, "set", nil, inputUsage)
	return cmd
}

func (c *cli) reviewUpdateCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "update <review-id>",
		Short: "Update the fields of a review given with --set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := form.NewReviewUpdateForm()
			f.SetID(args[0])
			if err := applyInputs(f, inputs); err != nil {
				return err
			}
			err := c.app.Service().UpdateReview(contextOf(cmd), f)
			return outcome(cmd, f.Report(), err)
		},
	}
	cmd.Flags().StringArrayVar(&inputs, "set", nil, inputUsage)
	return cmd
}

func (c *cli) reviewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := form.NewTarget()
			t.SetID(args[0])
			err := c.app.Service().DeleteReview(contextOf(cmd), t)
			return outcome(cmd, t.Report(), err)
		},
	}
}

// fieldsCmd lists the inputs a draft accepts with their default text. It
// needs no remote API, so it skips the app setup.
func fieldsCmd[T any](d *form.Draft[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the accepted --set fields and their defaults",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderFields(cmd.OutOrStdout(), d)
			return nil
		},
	}
}
