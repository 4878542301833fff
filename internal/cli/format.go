package cli

import (
	"io"
	"strconv"
	"strings"
)

func (c *CLI) fprintRow(w io.Writer, cols ...string) {
	io.WriteString(w, strings.Join(cols, "\t")+"\n")
}

func sizeString(w, h int) string {
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}
