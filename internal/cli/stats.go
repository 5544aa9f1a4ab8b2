package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/scroll-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show remembered offsets and database statistics for the origin",
		Long:  "Show entry counts and how many stored offsets restore cleanly for the configured origin. Use --all to cover every origin.",
		Run:   runStats,
	}

	cmd.Flags().Bool("all", false, "Report every origin")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p := store.StatsParams{DBPath: getDBPath(), Origin: cfg.Origin, Prefix: cfg.Prefix}
	if all {
		p.Origin = ""
	}
	stats, err := s.Stats(cmd.Context(), p)
	if err != nil {
		exitErr("stats", err)
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(b))
}
