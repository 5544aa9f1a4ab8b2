package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/scroll-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as JSON",
		Long:  "Export stored entries as a JSON array. Restrict to the configured origin with --current.",
		Run:   runExport,
	}

	cmd.Flags().Bool("current", false, "Only export the configured origin")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	current, _ := cmd.Flags().GetBool("current")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	origin := ""
	if current {
		origin = cfg.Origin
	}
	entries, err := store.ExportAll(cmd.Context(), s, origin)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}
