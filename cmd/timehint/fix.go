package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/timeoverwrite"
	"github.com/aretw0/timeoverwrite/pkg/core"
	"github.com/spf13/cobra"
)

var (
	fixHint  int
	fixTime  string
	fixWrite bool
	fixOut   string
	fixHTML  bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [file]",
	Short: "Correct a time hint",
	Long: `Register the time hints of a fixture, submit --time on hint --hint and print
the resulting text. Invalid times are rejected and leave the document unchanged.
Use --write to save the result back (or --out to save elsewhere).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if fixTime == "" {
			fatal("Error", fmt.Errorf("--time is required"))
		}

		mode := core.CommitUpdate
		if fixHTML {
			mode = core.CommitHTML
		}

		session, err := timeoverwrite.Open(args[0],
			timeoverwrite.WithRoot(root),
			timeoverwrite.WithLogger(slog.Default()),
			timeoverwrite.WithCommitMode(mode),
		)
		if err != nil {
			fatal("Error opening fixture", err)
		}

		ctx := cmd.Context()
		if _, err := session.Register(ctx); err != nil {
			fatal("Error registering hints", err)
		}

		ok, err := session.Submit(ctx, fixHint, fixTime)
		if err != nil {
			fatal("Error submitting correction", err)
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "Rejected %q: expected HH:MM, optionally followed by AM or PM\n", fixTime)
			os.Exit(2)
		}

		fmt.Println(session.Document().Text())

		if fixWrite || fixOut != "" {
			if err := session.Save(fixOut); err != nil {
				fatal("Error saving fixture", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().IntVar(&fixHint, "hint", 0, "Index of the hint to correct (see scan)")
	fixCmd.Flags().StringVarP(&fixTime, "time", "t", "", "New time, e.g. 14:30 or 2:30 PM")
	fixCmd.Flags().BoolVarP(&fixWrite, "write", "w", false, "Write the result back to the fixture")
	fixCmd.Flags().StringVarP(&fixOut, "out", "o", "", "Write the result to this path instead")
	fixCmd.Flags().BoolVar(&fixHTML, "html", false, "Commit by replacing the span with RDFa markup")
}
