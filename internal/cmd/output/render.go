package output

import (
	"io"

	"github.com/agentstation/hemicycle/internal/cmd/table"
)

// Render writes tabular for table, wide and csv formats and raw otherwise.
// tabular is built lazily so structured formats skip the conversion.
func Render(w io.Writer, format Format, raw any, tabular func(wide bool) table.Data) error {
	formatter := NewFormatter(format)
	if format.IsTabular() {
		return formatter.Format(w, tabular(format == FormatWide))
	}
	return formatter.Format(w, raw)
}
