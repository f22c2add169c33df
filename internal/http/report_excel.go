package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"redviva-data/internal/domain"
)

// ReportExportHeader columns of the professional report export
var ReportExportHeader = []string{
	"Report ID",
	"Recipient ID",
	"Submitter ID",
	"Kind",
	"Date",
	"Shift",
	"Time",
	"Fall",
	"Confusion",
	"Notes",
	"Submitted At",
}

// GenerateReportExport builds the Excel workbook for a report listing.
// data may be empty; the header row is always written.
func GenerateReportExport(data []*domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here, WriteTo needs the file to be open

	sheetName := "Reports"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FDE8E8"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ReportExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{38, 38, 38, 15, 12, 12, 8, 12, 14, 40, 20}
	for i := 0; i < len(ReportExportHeader); i++ {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(columnWidths) {
			if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, rep := range data {
		// pull the two divert-relevant answers out of the nested structure
		var answers struct {
			Mobility struct {
				Fall string `json:"fall"`
			} `json:"mobility"`
			Cognition struct {
				Confusion string `json:"confusion"`
			} `json:"cognition"`
		}
		_ = json.Unmarshal(rep.Answers, &answers)

		values := []any{
			rep.ReportID,
			rep.RecipientID,
			rep.SubmitterID,
			string(rep.Kind),
			rep.ReportDate,
			rep.Shift,
			rep.ReportTime,
			answers.Mobility.Fall,
			answers.Cognition.Confusion,
			rep.Notes,
			rep.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
