package main

import (
	"DMR_Link/internal/bootstrap"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Revoke every expired tracked link now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
			result, err := app.Tracker.Sweep(ctx)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Println("another sweep is running, skipped")
				return nil
			}
			fmt.Printf("checked %d, revoked %d, failed %d, kept %d\n", result.Checked, result.Revoked, result.Failed, result.Kept)
			return nil
		})
	},
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List tracked sharing links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
			links, err := app.Tracker.Outstanding(ctx)
			if err != nil {
				return err
			}
			now := time.Now()
			for _, l := range links {
				state := "live"
				if l.Expired(now) {
					state = "expired"
				}
				fmt.Printf("%-8s %s  %s\n", state, l.ExpiresAt.Local().Format(time.DateTime), l.Link)
			}
			fmt.Printf("%d tracked link(s)\n", len(links))
			return nil
		})
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <link>",
	Short: "Revoke one sharing link and stop tracking it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
			if err := app.Tracker.Revoke(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("revoked", args[0])
			return nil
		})
	},
}
