package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/aretw0/timeoverwrite"
	"github.com/aretw0/timeoverwrite/pkg/adapters/fs"
	"github.com/aretw0/timeoverwrite/pkg/adapters/lifecycle"
	"github.com/aretw0/timeoverwrite/pkg/core"
	"github.com/spf13/cobra"
)

var (
	watchPattern string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan fixtures whenever they change",
	Long:  `Watch --root for fixture changes and log the time hints of every created or modified file.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := slog.Default()
		store, err := timeoverwrite.NewStore(timeoverwrite.WithRoot(root), timeoverwrite.WithLogger(logger))
		if err != nil {
			fatal("Error creating store", err)
		}

		events, err := store.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		src := lifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}

		logger.Info("watching fixtures", "root", root, "pattern", watchPattern)
		for e := range src.Events() {
			ev, ok := e.(core.Event)
			if !ok || ev.Type == core.EventDelete {
				continue
			}
			hints, err := timeoverwrite.ScanFile(ctx, ev.Path, timeoverwrite.WithRoot(root))
			if err != nil {
				logger.Warn("scan failed", "path", ev.Path, "error", err)
				continue
			}
			for _, h := range hints {
				fmt.Printf("%s\t%v\t%s\n", ev.Path, h.Location, core.TruncateSeconds(h.Value))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", fs.DefaultPattern, "Glob of fixtures to watch")
}
