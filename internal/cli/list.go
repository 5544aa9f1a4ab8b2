package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/store"
	"github.com/spf13/cobra"
)

// listedOffset is one remembered view in list output.
type listedOffset struct {
	View      model.ViewMode `json:"view"`
	Key       string         `json:"key"`
	Value     string         `json:"value"`
	Valid     bool           `json:"valid"`
	UpdatedAt string         `json:"updated_at"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List remembered offsets for the origin",
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 100, "Max results")
	cmd.Flags().Bool("keys-only", false, "Only output storage keys")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	keysOnly, _ := cmd.Flags().GetBool("keys-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.List(cmd.Context(), store.ListParams{
		Origin: cfg.Origin,
		Prefix: cfg.Prefix + "_",
		Limit:  limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	if keysOnly {
		for _, e := range entries {
			fmt.Println(e.Key)
		}
		return
	}

	out := []listedOffset{}
	for _, e := range entries {
		view, _ := model.ParseKey(cfg.Prefix, e.Key)
		_, perr := model.ParseOffset(e.Value)
		out = append(out, listedOffset{
			View:      view,
			Key:       e.Key,
			Value:     e.Value,
			Valid:     perr == nil,
			UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
		})
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
