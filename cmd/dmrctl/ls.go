package main

import (
	"DMR_Link/config"
	"DMR_Link/internal/storage"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var lsDepth int

var lsCmd = &cobra.Command{
	Use:   "ls [folder]",
	Short: "Print a folder tree of the file store",
	Long: `Print a folder tree of the file store. The folder defaults to the
document root; relative folders are resolved against it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().IntVarP(&lsDepth, "depth", "d", -1, "Maximum directory depth, -1 for unlimited")
}

var newFileStore = storage.InitFileStore

func runLs(cmd *cobra.Command, args []string) error {
	var folder string
	switch {
	case len(args) == 1 && strings.HasPrefix(args[0], "/"):
		folder = args[0]
	case len(args) == 1:
		folder = config.Folders.Path(args[0])
	default:
		folder = config.Folders.Root
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	files := newFileStore()
	defer func() {
		if err := storage.Close(context.Background(), files); err != nil {
			log.Printf("close file store: %v", err)
		}
	}()
	return printTree(ctx, os.Stdout, files, folder, 0, lsDepth)
}

// printTree writes dir's children, descending into sub-directories until maxDepth.
func printTree(ctx context.Context, w io.Writer, files storage.FileStore, dir string, depth, maxDepth int) error {
	entries, err := files.ListChildren(ctx, dir)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		if !e.IsDir {
			fmt.Fprintf(w, "%s  %s\n", indent, e.Name)
			continue
		}
		fmt.Fprintf(w, "%s-> %s\n", indent, e.Name)
		if maxDepth >= 0 && depth+1 > maxDepth {
			continue
		}
		if err := printTree(ctx, w, files, e.Path, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}
