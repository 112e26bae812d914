package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"betreport/models"
)

// ExportTimestampLayout is the Creation Date format written by WriteLedgerCSV.
// It keeps the offset and sub-second part so ParseLedger reads back the same instant.
const ExportTimestampLayout = time.RFC3339Nano

// WriteLedgerCSV writes records back out in the ledger format they were read from
func WriteLedgerCSV(w io.Writer, records []models.WagerRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(RequiredColumns); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.GameName,
			record.Amount.String(),
			record.CreatedAt.Format(ExportTimestampLayout),
			record.Client,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write export row %d: %w", record.Row, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// ExportFilename names the export file after its window
func ExportFilename(w models.TimeWindow) string {
	const layout = "20060102-1504"
	return fmt.Sprintf("wagers_%s_to_%s.csv", w.Start.Format(layout), w.End.Format(layout))
}
