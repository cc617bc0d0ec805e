package export

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/yegors/awardsearch/internal/flights"
)

// RenderTable prints the records as a console table, same columns as the
// CSV export.
func RenderTable(w io.Writer, records []flights.FlightRecord) {
	cabins := cabinColumns(records)

	table := tablewriter.NewWriter(w)
	table.SetHeader(header(cabins))
	for _, record := range records {
		table.Append(row(record, cabins))
	}
	table.Render()
}
