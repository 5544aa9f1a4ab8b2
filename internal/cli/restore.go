package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Show where a freshly mounted view would scroll to",
		Long:  "Run a restore against a detached region starting at --from and print the resulting offset.",
		Run:   runRestore,
	}

	cmd.Flags().StringP("view", "v", "", "View mode (required)")
	cmd.Flags().Float64("from", 0, "Region offset before restore")
	cmd.MarkFlagRequired("view")

	RootCmd.AddCommand(cmd)
}

// detachedRegion is a region with no page behind it.
type detachedRegion struct {
	top float64
}

func (r *detachedRegion) ScrollTop(context.Context) (float64, error) { return r.top, nil }

func (r *detachedRegion) SetScrollTop(_ context.Context, offset float64) error {
	r.top = offset
	return nil
}

func (r *detachedRegion) ViewportHeight(context.Context) (float64, error) { return 0, nil }

func (r *detachedRegion) NowIndicator(context.Context) (float64, bool, error) {
	return 0, false, nil
}

func runRestore(cmd *cobra.Command, args []string) {
	view := viewFlag(cmd)
	from, _ := cmd.Flags().GetFloat64("from")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m := newMemory(s)
	r := &detachedRegion{top: from}
	m.Attach(r)
	m.Restore(cmd.Context(), view)

	b, _ := json.Marshal(map[string]any{
		"view":       view,
		"scrollable": m.IsScrollable(view),
		"from":       from,
		"offset":     r.top,
		"moved":      r.top != from,
	})
	fmt.Println(string(b))
}
