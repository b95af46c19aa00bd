package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chartload/pkg/config"
)

func newListCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the charts named in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTITLE\tURL")
			for _, name := range cfg.Names() {
				ch, _ := cfg.Chart(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ch.Name, ch.Title, ch.URL)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "chartload.yaml", "YAML configuration file")
	return cmd
}
