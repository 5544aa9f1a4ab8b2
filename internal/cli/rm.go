package cli

import (
	"fmt"

	"github.com/rcliao/scroll-memory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Forget the offset for a view mode",
		Run:   runRm,
	}

	cmd.Flags().StringP("view", "v", "", "View mode")
	cmd.Flags().StringP("key", "k", "", "Raw storage key (instead of --view)")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	view := viewFlag(cmd)
	key, _ := cmd.Flags().GetString("key")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if key == "" {
		if view == "" {
			exitErr("rm", fmt.Errorf("--view or --key is required"))
		}
		key = newMemory(s).Key(view)
	}

	err = s.Rm(cmd.Context(), store.RmParams{Origin: cfg.Origin, Key: key})
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"origin":%q,"key":%q}`+"\n", cfg.Origin, key)
}
