package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/five82/exview/internal/app"
	"github.com/five82/exview/internal/clock"
)

// withEnv runs fn against a freshly set up runtime and releases it after.
func withEnv(cmd *cobra.Command, ro *rootOptions, info BuildInfo, fn func(ctx context.Context, env *app.Env) error) error {
	env, err := app.Setup(ro.appOptions(info))
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, env)
}

func addInstances(topLevel *cobra.Command, ro *rootOptions, info BuildInfo) {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List the server instances known to the log service.",
		Example: `
exview instances
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, ro, info, func(ctx context.Context, env *app.Env) error {
				ids, err := env.Client.ListInstances(ctx)
				if err != nil {
					env.Logger.Error("list instances failed", "error", err)
					return fmt.Errorf("list instances: %w", err)
				}
				printInstances(cmd.OutOrStdout(), ids)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addDates(topLevel *cobra.Command, ro *rootOptions, info BuildInfo, clk clock.Clock) {
	cmd := &cobra.Command{
		Use:   "dates <instance>",
		Short: "List the dates whose logs were extracted for an instance.",
		Example: `
exview dates srv-1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance := args[0]
			return withEnv(cmd, ro, info, func(ctx context.Context, env *app.Env) error {
				dates, err := env.Client.ListExtractedDates(ctx, instance)
				if err != nil {
					env.Logger.Error("list extracted dates failed", "instance", instance, "error", err)
					return fmt.Errorf("list extracted dates: %w", err)
				}
				printDates(cmd.OutOrStdout(), instance, dates, clock.Today(clk))
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

type exceptionsOptions struct {
	Line     int
	Truncate int
}

func addExceptions(topLevel *cobra.Command, ro *rootOptions, info BuildInfo) {
	eo := &exceptionsOptions{}

	cmd := &cobra.Command{
		Use:   "exceptions <instance> <date>",
		Short: "List the exceptions found in an extracted log.",
		Long: `List the exceptions found in the log extracted for an instance on a
date (YYYYMMDD). Messages are cut to truncate_at characters; pass --line to
print one exception in full.`,
		Example: `
exview exceptions srv-1 20240115
exview exceptions srv-1 20240115 --line 42
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			if !clock.ValidKey(args[1]) {
				return fmt.Errorf("invalid date %q: want YYYYMMDD", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, date := args[0], args[1]
			return withEnv(cmd, ro, info, func(ctx context.Context, env *app.Env) error {
				exceptions, err := env.Client.ListExceptions(ctx, instance, date)
				if err != nil {
					env.Logger.Error("list exceptions failed", "instance", instance, "date", date, "error", err)
					return fmt.Errorf("list exceptions: %w", err)
				}

				out := cmd.OutOrStdout()
				if cmd.Flags().Changed("line") {
					for _, ex := range exceptions {
						if ex.LineNo == eo.Line {
							printDetail(out, date, ex)
							return nil
						}
					}
					return fmt.Errorf("no exception at line %d on %s", eo.Line, date)
				}

				limit := env.Config.TruncateAt
				if cmd.Flags().Changed("truncate") {
					limit = eo.Truncate
				}
				printExceptions(out, instance, date, exceptions, limit)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&eo.Line, "line", "l", 0,
		"Print the full detail of the exception at this line number.")
	cmd.Flags().IntVarP(&eo.Truncate, "truncate", "t", 0,
		"Cut messages to this many characters; 0 prints them whole.")

	topLevel.AddCommand(cmd)
}

type extractOptions struct {
	Force bool
}

func addExtract(topLevel *cobra.Command, ro *rootOptions, info BuildInfo, clk clock.Clock) {
	xo := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <instance>",
		Short: "Ask the log service to extract today's log for an instance.",
		Long: `Ask the log service to extract today's log for an instance. Nothing is
requested when today's log is already among the extracted dates, unless
--force is given.`,
		Example: `
exview extract srv-1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance := args[0]
			today := clock.Today(clk)
			return withEnv(cmd, ro, info, func(ctx context.Context, env *app.Env) error {
				out := cmd.OutOrStdout()
				if !xo.Force {
					dates, err := env.Client.ListExtractedDates(ctx, instance)
					if err != nil {
						env.Logger.Error("list extracted dates failed", "instance", instance, "error", err)
						return fmt.Errorf("list extracted dates: %w", err)
					}
					if slices.Contains(dates, today) {
						printNotice(out, fmt.Sprintf("Today's log (%s) has already been extracted.", today))
						return nil
					}
				}

				res, err := env.Client.RequestExtraction(ctx, instance)
				if err != nil {
					env.Logger.Error("extraction failed", "instance", instance, "error", err)
					return fmt.Errorf("request extraction: %w", err)
				}
				env.Logger.Info("extraction requested", "instance", instance, "date", today, "message", res.Message)
				msg := res.Message
				if msg == "" {
					msg = fmt.Sprintf("Extraction of %s requested.", today)
				}
				printNotice(out, msg)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&xo.Force, "force", "f", false,
		"Request extraction even if today's log was already extracted.")

	topLevel.AddCommand(cmd)
}

