package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Record a scroll offset for a view mode",
		Long:  "Record a scroll offset as if the calendar had been scrolled. Non-scrollable views and invalid offsets are ignored.",
		Run:   runCapture,
	}

	cmd.Flags().StringP("view", "v", "", "View mode (required)")
	cmd.Flags().Float64("offset", 0, "Pixel offset (required)")

	cmd.MarkFlagRequired("view")
	cmd.MarkFlagRequired("offset")

	RootCmd.AddCommand(cmd)
}

func runCapture(cmd *cobra.Command, args []string) {
	view := viewFlag(cmd)
	offset, _ := cmd.Flags().GetFloat64("offset")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m := newMemory(s)
	m.Capture(cmd.Context(), view, offset)

	res := offsetResult{
		Origin:     cfg.Origin,
		View:       view,
		Key:        m.Key(view),
		Scrollable: m.IsScrollable(view),
	}
	if stored, found, err := m.Load(cmd.Context(), view); err == nil && found {
		res.Found = true
		res.Offset = &stored
	}

	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}
