package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/spf13/cobra"
)

// offsetResult is the JSON shape printed for a single view mode.
type offsetResult struct {
	Origin     string         `json:"origin"`
	View       model.ViewMode `json:"view"`
	Key        string         `json:"key"`
	Scrollable bool           `json:"scrollable"`
	Found      bool           `json:"found"`
	Offset     *float64       `json:"offset,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the persisted offset for a view mode",
		Run:   runGet,
	}

	cmd.Flags().StringP("view", "v", "", "View mode, e.g. timeGridWeek (required)")
	cmd.MarkFlagRequired("view")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	view := viewFlag(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m := newMemory(s)
	res := offsetResult{
		Origin:     cfg.Origin,
		View:       view,
		Key:        m.Key(view),
		Scrollable: m.IsScrollable(view),
	}
	offset, found, err := m.Load(cmd.Context(), view)
	if err != nil {
		res.Error = err.Error()
	}
	if found {
		res.Found = true
		res.Offset = &offset
	}

	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}
