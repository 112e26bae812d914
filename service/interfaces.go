package service

import (
	"context"
	"io"

	"betreport/models"
)

// ReportService runs the ledger pipeline: ingest once, then filter, classify and aggregate per window
type ReportService interface {
	// Ingest parses an uploaded ledger into normalized records
	Ingest(ctx context.Context, r io.Reader) (*Ledger, error)

	// Generate builds the report for one window. When nothing falls inside the window the
	// empty report is returned together with ErrEmptyResult.
	Generate(ctx context.Context, ledger *Ledger, window models.TimeWindow) (*models.Report, error)

	// Eligibility returns the list used for classification
	Eligibility() *EligibilityList
}
