package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/aretw0/timeoverwrite"
	"github.com/aretw0/timeoverwrite/pkg/core"
	"github.com/spf13/cobra"
)

var (
	scanJSON bool
)

type hintView struct {
	Index    int         `json:"index"`
	Location core.Region `json:"location"`
	Text     string      `json:"text"`
	Value    string      `json:"value"`
	Display  string      `json:"display"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "List the time hints of a fixture",
	Long:  `Scan a YAML or JSON fixture and list every span whose dominant triple is typed xsd:time.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hints, err := timeoverwrite.ScanFile(cmd.Context(), args[0],
			timeoverwrite.WithRoot(root),
			timeoverwrite.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Error scanning fixture", err)
		}

		views := make([]hintView, 0, len(hints))
		for i, h := range hints {
			views = append(views, hintView{
				Index:    i,
				Location: h.Location,
				Text:     h.Text,
				Value:    h.Value,
				Display:  core.TruncateSeconds(h.Value),
			})
		}

		if scanJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(views); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		if len(views) == 0 {
			fmt.Println("No time hints found.")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tLOCATION\tTEXT\tVALUE")
		for _, v := range views {
			fmt.Fprintf(w, "%d\t%v\t%s\t%s\n", v.Index, v.Location, v.Text, v.Display)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output in JSON format")
}
