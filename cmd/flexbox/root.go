// Package main starts the flexbox server.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frudas24/flexbox/internal/config"
)

// newRootCmd builds the command tree. Each call gets its own viper instance
// so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "flexbox",
		Short:         "flexbox hosts draggable, resizable boxes driven by remote pointer input.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.Configure(v, cfgFile)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newServeCmd(v), newVersionCmd())
	return root
}
