package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rcliao/scroll-memory/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Run:   runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")
	path := getConfigPath()

	if _, err := os.Stat(path); err == nil && !force {
		exitErr("config init", fmt.Errorf("%s exists (use --force)", path))
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		exitErr("config init", err)
	}

	if err := config.Save(path, cfg); err != nil {
		exitErr("config init", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q}`+"\n", path)
}
