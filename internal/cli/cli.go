// Package cli is the command line front end of the catalog client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/app"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/spf13/cobra"
)

// ErrReported is returned once the failure message was already printed.
var ErrReported = errors.New("failure reported")

type cli struct {
	configPath string
	printCfg   bool
	app        *app.App
}

// NewRootCmd builds the catalog command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:               "catalog",
		Short:             "Browse the product catalog and submit product and review edits",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: c.teardown,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file")
	root.PersistentFlags().BoolVar(&c.printCfg, "print-config", false,
		"print the loaded config")

	root.AddCommand(
		c.listCmd(),
		c.categoriesCmd(),
		c.showCmd(),
		c.reviewsCmd(),
		c.productCmd(),
		c.reviewCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFile(config.ConfigPath(c.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	if c.printCfg {
		cfg.Fprint(cmd.ErrOrStderr())
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) teardown(*cobra.Command, []string) {
	if c.app != nil {
		c.app.Close()
	}
}

// setter is satisfied by every form.
type setter interface {
	Set(name, text string) error
}

// applyInputs feeds name=value pairs into f. Coercion failures stay in
// the draft and surface as validation errors on submit.
func applyInputs(f setter, inputs []string) error {
	for _, in := range inputs {
		name, text, ok := strings.Cut(in, "=")
		if !ok {
			return fmt.Errorf("input %q is not in name=value form", in)
		}
		err := f.Set(strings.TrimSpace(name), text)
		if errors.Is(err, domain.ErrUnknownField) {
			return err
		}
	}
	return nil
}

type reportView interface {
	ErrorMessage() string
	SuccessMessage() string
}

// outcome prints the slot message of a finished submission.
func outcome(cmd *cobra.Command, report reportView, err error) error {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), report.ErrorMessage())
		return ErrReported
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.SuccessMessage())
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
