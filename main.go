package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/briangreenhill/recipebox/internal/app"
	"github.com/briangreenhill/recipebox/internal/browse"
	"github.com/briangreenhill/recipebox/internal/config"
)

const version = "0.1.0"

func main() {
	cli := NewCLI(setupFromEnv)
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message(err))
		os.Exit(1)
	}
}

// Setup builds the controller a command runs against, plus its cleanup.
type Setup func(ctx context.Context) (*browse.Controller, func() error, error)

func setupFromEnv(ctx context.Context) (*browse.Controller, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	if cfg.Level() < zerolog.WarnLevel {
		logger = logger.Level(cfg.Level())
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a.Browse, a.Close, nil
}

// CLI runs the browse flows from the command line.
type CLI struct {
	root    *cobra.Command
	setup   Setup
	browse  *browse.Controller
	cleanup func() error
	asJSON  bool
}

func NewCLI(setup Setup) *CLI {
	c := &CLI{setup: setup}
	c.root = &cobra.Command{
		Use:           "recipebox",
		Short:         "Browse TheMealDB recipes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			b, cleanup, err := c.setup(cmd.Context())
			if err != nil {
				return err
			}
			c.browse, c.cleanup = b, cleanup
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.cleanup == nil {
				return nil
			}
			return c.cleanup()
		},
	}
	c.root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print JSON instead of text")

	c.root.AddCommand(
		c.newCategoriesCmd(),
		c.newCategoryCmd(),
		c.newSearchCmd(),
		c.newMealCmd(),
		c.newRandomCmd(),
		c.newWarmCmd(),
	)
	return c
}

func (c *CLI) Execute(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.root.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.root.SetOut(out)
	c.root.SetErr(err)
}

func (c *CLI) print(cmd *cobra.Command, v any, text func() string) error {
	if c.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := io.WriteString(cmd.OutOrStdout(), text())
	return err
}

func (c *CLI) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := c.browse.Categories(cmd.Context())
			if err != nil {
				return fmt.Errorf("could not load categories: %w", err)
			}
			return c.print(cmd, cats, func() string { return formatCategories(cats) })
		},
	}
}

func (c *CLI) newCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "Show a category and its meals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the description only comes from the category list
			if _, err := c.browse.Categories(cmd.Context()); err != nil {
				return fmt.Errorf("could not load categories: %w", err)
			}
			v, err := c.browse.CategoryDetail(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return c.print(cmd, v, func() string { return formatCategory(v) })
		},
	}
}

func (c *CLI) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search by category, then by meal name",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.browse.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return c.print(cmd, res, func() string { return formatSearch(res) })
		},
	}
}

func (c *CLI) newMealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal [id]",
		Short: "Show a meal by id, or by name with --name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" && name == "" {
				return cmd.Help()
			}
			d, err := c.browse.ResolveMeal(cmd.Context(), id, name)
			if err != nil {
				return err
			}
			return c.print(cmd, d, func() string { return formatMeal(d) })
		},
	}
	cmd.Flags().StringP("name", "n", "", "Find the meal by name when no id is given")
	return cmd
}

func (c *CLI) newRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.browse.RandomMeal(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cmd, d, func() string { return formatMeal(d) })
		},
	}
}

func (c *CLI) newWarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Load every category's meals into the session cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, _ := cmd.Flags().GetInt("concurrency")
			if reset, _ := cmd.Flags().GetBool("reset"); reset {
				if err := c.browse.State().Reset(cmd.Context()); err != nil {
					return fmt.Errorf("reset session cache: %w", err)
				}
			}
			stats, err := c.browse.Warm(cmd.Context(), n)
			if err != nil {
				return err
			}
			return c.print(cmd, stats, func() string { return formatWarm(stats) })
		},
	}
	cmd.Flags().IntP("concurrency", "c", 4, "Category fetches in flight at once")
	cmd.Flags().Bool("reset", false, "Clear the session cache before warming")
	return cmd
}
