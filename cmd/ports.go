package cmd

import (
	"fmt"
	"strconv"

	"github.com/daedaleanai/verilated/gen"
	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/port"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports [files or directories]",
	Short: "Lists the ports of every declared module",
	Long: `Lists the ports of every declared module with their signal names, widths
and host types. With --symbols the native symbols of the shim are listed instead.`,
	Run: runPorts,
}

var portsSymbols bool

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	roleStyles  = map[port.Role]lipgloss.Style{
		port.Clock: cellStyle.Foreground(lipgloss.Color("#87CEEB")),
		port.Reset: cellStyle.Foreground(lipgloss.Color("#FF6B6B")),
	}
)

func init() {
	portsCmd.Flags().BoolVar(&portsSymbols, "symbols", false, "List native symbols instead of ports")
	rootCmd.AddCommand(portsCmd)
}

func portsTable(m port.Module) *table.Table {
	ports := m.Ports.All()
	rows := [][]string{}
	for _, p := range ports {
		rows = append(rows, []string{
			p.Field, p.Name, p.Role.String(), strconv.Itoa(p.Width), p.Class.HostType(),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("FIELD", "SIGNAL", "ROLE", "WIDTH", "TYPE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if style, ok := roleStyles[ports[row].Role]; ok {
				return style
			}
			return cellStyle
		})
}

func runPorts(cmd *cobra.Command, args []string) {
	modules, err := extractModules(args)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	if len(modules) == 0 {
		log.Warning("No module declarations found.\n")
		return
	}

	for _, m := range modules {
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s (%s, %s)", m.HostType, m.NativeType, m.Pos)))
		if portsSymbols {
			for _, symbol := range gen.Symbols(m) {
				fmt.Printf("  %s\n", symbol)
			}
		} else {
			fmt.Println(portsTable(m))
		}
		fmt.Println()
	}
}
