package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "origins",
		Short: "List all origins with stored entries",
		Run:   runOrigins,
	}

	RootCmd.AddCommand(cmd)
}

func runOrigins(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	origins, err := s.ListOrigins(cmd.Context())
	if err != nil {
		exitErr("list origins", err)
	}
	if origins == nil {
		origins = []string{}
	}

	b, _ := json.MarshalIndent(origins, "", "  ")
	fmt.Println(string(b))
}
