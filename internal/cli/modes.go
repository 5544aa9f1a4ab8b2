package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "modes [view...]",
		Short: "Show which view modes keep scroll memory",
		Run:   runModes,
	}

	RootCmd.AddCommand(cmd)
}

func runModes(cmd *cobra.Command, args []string) {
	c := cfg.Classifier()

	seen := map[model.ViewMode]bool{}
	for v := range model.KnownViews {
		seen[v] = true
	}
	for _, v := range c.Scrollable() {
		seen[v] = true
	}
	for _, a := range args {
		seen[model.ViewMode(a)] = true
	}

	type modeRow struct {
		View       model.ViewMode `json:"view"`
		Scrollable bool           `json:"scrollable"`
		Key        string         `json:"key,omitempty"`
	}
	var rows []modeRow
	for v := range seen {
		row := modeRow{View: v, Scrollable: c.IsScrollable(v)}
		if row.Scrollable {
			row.Key = model.Key(cfg.Prefix, v)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].View < rows[j].View })

	b, _ := json.MarshalIndent(rows, "", "  ")
	fmt.Println(string(b))
}
