package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contipay/contipay-go/contipay"
)

func newProvidersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List supported providers",
		Long:  `List every mobile and card provider with its short code and required fields.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue := map[string][]contipay.Provider{
				"mobile": contipay.MobileProviders(),
				"card":   contipay.CardProviders(),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(catalogue)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RAIL\tKEY\tNAME\tCODE\tREQUIRED")
			for _, rail := range []string{"mobile", "card"} {
				for _, p := range catalogue[rail] {
					name, code := p.DisplayName, p.ShortCode
					if p.CallerLabelled {
						name, code = "(caller)", "(caller)"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rail, p.Key, name, code, strings.Join(p.Required, ","))
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}
