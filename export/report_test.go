package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meatadmin/stats"
)

var rows = []stats.ReportRow{
	{Date: "2024-01-10", Orders: 2, Revenue: 300, AvgOrderValue: 150, NewUsers: 1},
	{Date: "2024-01-09", Orders: 1, Revenue: 60, AvgOrderValue: 60, NewUsers: 0},
}

func TestReportCSV(t *testing.T) {
	data, err := ReportCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4) // header + 2 days + totals
	assert.Equal(t, []string{"Date", "Orders", "Revenue", "Avg Order Value", "New Users"}, records[0])
	assert.Equal(t, []string{"2024-01-10", "2", "300.00", "150", "1"}, records[1])
	assert.Equal(t, "Total", records[3][0])
	assert.Equal(t, "3", records[3][1])
	assert.Equal(t, "360.00", records[3][2])
}

func TestReportExcel(t *testing.T) {
	f, err := ReportExcel(rows)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", got)

	got, err = f.GetCellValue("Report", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	got, err = f.GetCellValue("Report", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", got)
}
