package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/xuri/excelize/v2"

	"meatadmin/stats"
)

var header = []string{"Date", "Orders", "Revenue", "Avg Order Value", "New Users"}

// ReportCSV renders the daily breakdown, with the totals row last.
func ReportCSV(rows []stats.ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(record(r)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(record(stats.ReportSummary(rows))); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportExcel renders the same breakdown as a single-sheet workbook.
func ReportExcel(rows []stats.ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	line := 2
	for _, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{r.Date, r.Orders, r.Revenue, r.AvgOrderValue, r.NewUsers}); err != nil {
			return nil, err
		}
		line++
	}
	total := stats.ReportSummary(rows)
	cell, _ := excelize.CoordinatesToCellName(1, line)
	if err := f.SetSheetRow(sheet, cell, &[]interface{}{total.Date, total.Orders, total.Revenue, total.AvgOrderValue, total.NewUsers}); err != nil {
		return nil, err
	}
	return f, nil
}

func record(r stats.ReportRow) []string {
	return []string{
		r.Date,
		strconv.Itoa(r.Orders),
		strconv.FormatFloat(r.Revenue, 'f', 2, 64),
		strconv.FormatFloat(r.AvgOrderValue, 'f', 0, 64),
		strconv.Itoa(r.NewUsers),
	}
}
