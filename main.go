package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "botswatter",
		Short:         "Botswatter - keyword autoban and image purge for Discord",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSlice("config-dir", []string{"."}, "Directories searched for config.yaml")

	root.AddCommand(runCmd())
	root.AddCommand(purgeImagesCmd())
	root.AddCommand(autobanCmd())
	return root
}
