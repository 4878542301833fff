package cli

import (
	"text/tabwriter"

	"github.com/albertogalvisvml/labelpdfapp/internal/services/renderer"
	"github.com/spf13/cobra"
)

// variantsCommand creates the variants command.
func (c *CLI) variantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "Print the label layout table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			c.fprintRow(w, "VARIANT", "TYPE", "ASSET", "AREA", "SIZE")
			for _, l := range renderer.Layouts() {
				info := l.Info()
				r := l.Rect(1)
				c.fprintRow(w,
					string(info.Variant),
					info.Type,
					info.Asset,
					r.Min.String()+"-"+r.Max.String(),
					sizeString(info.Width, info.Height),
				)
			}
			return w.Flush()
		},
	}
}
