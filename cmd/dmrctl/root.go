package main

import (
	"DMR_Link/config"
	"DMR_Link/internal/bootstrap"
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var commandTimeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "dmrctl",
	Short: "Look up controlled documents and manage their sharing links",
	Long: `dmrctl resolves where a controlled document is used, builds Device
Master Record link bundles and manages the sharing links they create.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(config.InitConfig)
	rootCmd.PersistentFlags().DurationVar(&commandTimeout, "timeout", 5*time.Minute, "Overall time limit for the command")
	rootCmd.AddCommand(whereUsedCmd)
	rootCmd.AddCommand(dmrCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(lsCmd)
}

// withApp connects the backends and runs fn under the command timeout.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app := bootstrap.Connect()
	defer app.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	return fn(ctx, app)
}
