package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/twitchylinux/twlconf/install"
)

func newShowCmd() *cobra.Command {
	var (
		configPath string
		format     string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration as the installation engine sees it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := readConfig(configPath)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), conf, format)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration document")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")
	cmd.MarkFlagRequired("config")
	return cmd
}

func render(w io.Writer, conf install.Configuration, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(conf)
	case "yaml":
		// Round trip through JSON so the outbound contract (omitted
		// internal fields, null sections) is what gets rendered.
		b, err := json.Marshal(conf)
		if err != nil {
			return fmt.Errorf("encoding configuration: %v", err)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("converting to yaml: %v", err)
		}
		resetStyle(&doc)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(&doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// resetStyle drops the flow and quoting styles inherited from the JSON
// input. The encoder still quotes strings that would read as another type.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

func init() {
	rootCmd.AddCommand(newShowCmd())
}
