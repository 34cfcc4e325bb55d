package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/addegbenga/mip-dapp/abi"
)

var showSelectors bool

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Imprime o ABI do contrato MIP",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !showSelectors {
			_, err := out.Write(abi.Raw)
			return err
		}
		d, err := abi.MIP()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FUNCTION\tMUTABILITY\tSELECTOR")
		for _, fn := range d.Functions() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", fn.Name, fn.StateMutability, abi.SelectorHex(fn.Name))
		}
		return tw.Flush()
	},
}

func init() {
	abiCmd.Flags().BoolVar(&showSelectors, "selectors", false, "lista funções e seletores em vez do JSON")
}
