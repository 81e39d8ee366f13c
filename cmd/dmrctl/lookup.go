package main

import (
	"DMR_Link/internal/bootstrap"
	"DMR_Link/internal/service"
	"DMR_Link/utils"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var dmrJSON bool

var whereUsedCmd = &cobra.Command{
	Use:   "where-used <doc-type> <document>",
	Short: "List the parts that reference a document",
	Long: fmt.Sprintf(`List the parts that reference a document.

Document types: %s`, strings.Join(service.DocTypes(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runWhereUsed,
}

var dmrCmd = &cobra.Command{
	Use:   "dmr <part>",
	Short: "Build the DMR link bundle of a part",
	Args:  cobra.ExactArgs(1),
	RunE:  runDMR,
}

func init() {
	dmrCmd.Flags().BoolVar(&dmrJSON, "json", false, "Print the bundle as JSON")
}

func runWhereUsed(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
		parts, classification, err := app.Resolver.Resolve(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		document := utils.NormalizeDocument(args[1])
		if len(parts) == 0 {
			fmt.Printf("%s is not used by any part\n", document)
			return nil
		}
		fmt.Printf("%s %s is used by %d part(s):\n", classification, document, len(parts))
		for i, part := range parts {
			fmt.Printf("%d. %s\n", i+1, part)
		}
		return nil
	})
}

func runDMR(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
		bundle, password, err := app.DMR.GetDMR(ctx, args[0])
		if err != nil {
			return err
		}
		if dmrJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"part":     utils.NormalizePart(args[0]),
				"dmr":      bundle,
				"password": password,
			})
		}
		fmt.Printf("DMR %s\n", utils.NormalizePart(args[0]))
		for _, slot := range bundle.Slots() {
			if slot.Name == "" {
				continue
			}
			link := "-"
			if slot.HasLink() {
				link = slot.URL()
			}
			fmt.Printf("  %-22s %-32s %s\n", slot.Key, slot.Name, link)
		}
		fmt.Printf("password: %s\n", password)
		return nil
	})
}
