package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/twitchylinux/twlconf/install"
	"github.com/twitchylinux/twlconf/z"
)

type probeResult struct {
	SystemStorageInfo      []install.SystemStorageInfo  `json:"system_storage_info"`
	InstallAlongPartitions []install.SuggestedPartition `json:"installAlongPartitions"`
}

func newProbeCmd() *cobra.Command {
	var (
		asJSON  bool
		minFree int64
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Show the partition tables of attached disks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			disks, err := z.ProbeStorage(cmd.Context())
			if err != nil {
				return err
			}
			return printProbe(cmd.OutOrStdout(), disks, minFree, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the planning state as JSON")
	cmd.Flags().Int64Var(&minFree, "min-free", 20_000_000_000, "Free bytes needed to suggest installing alongside a partition")
	return cmd
}

func printProbe(w io.Writer, disks []z.Disk, minFree int64, asJSON bool) error {
	res := probeResult{
		SystemStorageInfo:      z.Snapshot(disks),
		InstallAlongPartitions: z.SuggestAlongside(disks, minFree),
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range disks {
		fmt.Fprintf(tw, "%s\t%s\t\t\n", d.Path, z.ByteCountDecimal(d.Size))
		for _, p := range d.Layout.Partitions {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", deref(p.Name), sizeOf(p.Size), deref(p.FileSystem), deref(p.PartitionName))
		}
	}
	if len(res.InstallAlongPartitions) > 0 {
		fmt.Fprintln(tw, "\nCan install alongside:")
		for _, s := range res.InstallAlongPartitions {
			fmt.Fprintf(tw, "  %s\t%s free\t%s\t\n", s.Path, z.ByteCountDecimal(s.Size-s.Used), s.FileSystem)
		}
	}
	return tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func sizeOf(n *int64) string {
	if n == nil {
		return "-"
	}
	return z.ByteCountDecimal(*n)
}

func init() {
	rootCmd.AddCommand(newProbeCmd())
}
