package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/ifmon/internal/alias"
	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
	"github.com/rileyhilliard/ifmon/internal/monitor"
	"github.com/rileyhilliard/ifmon/internal/netstat"
	"github.com/rileyhilliard/ifmon/internal/ui"
)

var interfacesNoNames bool

// interfacesCmd prints a one-shot table of interfaces
var interfacesCmd = &cobra.Command{
	Use:     "interfaces",
	Aliases: []string{"ls"},
	Short:   "List network interfaces and their byte counters",
	Long: `Print every network interface once, with its group, state,
friendly name and the total bytes received and sent since boot.

Examples:
  ifmon interfaces
  ifmon interfaces --no-names`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		samples, err := netstat.NewSampler(logger.NewEnvLogger("[sample]")).Sample(ctx)
		if err != nil {
			return err
		}

		var aliases map[string]string
		if !interfacesNoNames {
			aliases, err = alias.NewResolver(logger.NewEnvLogger("[alias]")).Resolve(ctx)
			if err != nil {
				ui.PrintWarning("Friendly names unavailable: " + errors.Summary(err))
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable(interfaceColumns, interfaceRows(samples, aliases)))
		return nil
	},
}

func init() {
	interfacesCmd.Flags().BoolVar(&interfacesNoNames, "no-names", false, "skip the friendly-name lookup")
}

var interfaceColumns = []ui.TableColumn{
	{Title: "", Width: 1},
	{Title: "Interface", Width: 10},
	{Title: "Group", Width: 8},
	{Title: "Name", Width: 4},
	{Title: "Received", Width: 8},
	{Title: "Sent", Width: 8},
}

// interfaceRows builds table rows grouped like the dashboard: physical
// interfaces first, then virtual, each sorted by name.
func interfaceRows(samples []monitor.InterfaceSample, aliases map[string]string) [][]string {
	sorted := make([]monitor.InterfaceSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		gi, gj := monitor.GroupOf(sorted[i].Name), monitor.GroupOf(sorted[j].Name)
		if gi != gj {
			return gi < gj
		}
		return sorted[i].Name < sorted[j].Name
	})

	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		state := ui.SymbolDown
		if s.IsUp() {
			state = ui.SymbolUp
		}

		group := "physical"
		if monitor.GroupOf(s.Name) == monitor.GroupVirtual {
			group = "virtual"
			if s.IsLoopback {
				group = "loopback"
			}
		}

		rows = append(rows, []string{
			state,
			s.Name,
			group,
			aliases[s.Name],
			humanize.IBytes(s.RxBytes),
			humanize.IBytes(s.TxBytes),
		})
	}
	return rows
}
