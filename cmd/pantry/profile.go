package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/pantry/internal/config"
	"github.com/vnykmshr/pantry/pkg/ingredient"
	"github.com/vnykmshr/pantry/pkg/profile/warmer"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage consumer allergen profiles",
		Long: `Manage the allergen profiles kept in the configured backend.

Available subcommands:
  set    - Replace a consumer's allergens
  get    - Show a consumer's allergens
  delete - Remove a consumer's profile
  list   - List consumers with a profile
  warm   - Reload every profile into the local cache once`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <consumer> [allergen...]",
			Short: "Replace a consumer's allergens",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd, a.cfg.Profile.Timeout)
				defer cancel()

				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				set := ingredient.NewAllergenSet(args[1:]...)
				if err := store.Save(ctx, args[0], set); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s: %s\n", args[0], strings.Join(set.Names(), ", "))
				a.warnEphemeral(cmd)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <consumer>",
			Short: "Show a consumer's allergens",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd, a.cfg.Profile.Timeout)
				defer cancel()

				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				set, err := store.Allergens(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s: %s\n", args[0], strings.Join(set.Names(), ", "))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <consumer>",
			Short: "Remove a consumer's profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd, a.cfg.Profile.Timeout)
				defer cancel()

				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				a.warnEphemeral(cmd)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List consumers with a profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := commandContext(cmd, a.cfg.Profile.Timeout)
				defer cancel()

				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				consumers, err := store.Consumers(ctx)
				if err != nil {
					return err
				}
				for _, consumer := range consumers {
					fmt.Fprintln(a.out, consumer)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "warm",
			Short: "Reload every profile into the local cache once",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := warmer.DefaultConfig()
				cfg.Schedule = a.cfg.Profile.WarmSchedule
				cfg.Metrics = a.metrics
				cfg.Logger = a.logger

				ctx, cancel := commandContext(cmd, cfg.Timeout)
				defer cancel()

				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				w, err := warmer.New(store, cfg)
				if err != nil {
					return err
				}
				if err := w.Warm(ctx); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "warmed %d profiles\n", store.Cached())
				return nil
			},
		},
	)
	return cmd
}

// warnEphemeral tells the user that a write to the memory backend is gone
// once the command exits.
func (a *app) warnEphemeral(cmd *cobra.Command) {
	if a.cfg.Profile.Backend != config.BackendMemory {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "warning: the memory backend does not persist profiles; use redis or sqlite to keep them")
}
