package service

import (
	"context"
	"fmt"
	"io"

	"betreport/models"

	log "github.com/sirupsen/logrus"
)

// reportService implements the ReportService interface
type reportService struct {
	eligibility *EligibilityList
	ingestOpts  IngestOptions
}

// NewReportService creates a new report service
func NewReportService(eligibility *EligibilityList, ingestOpts IngestOptions) ReportService {
	return &reportService{
		eligibility: eligibility,
		ingestOpts:  ingestOpts,
	}
}

// Ingest parses an uploaded ledger
func (s *reportService) Ingest(ctx context.Context, r io.Reader) (*Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ledger, err := ParseLedger(r, s.ingestOpts)
	if err != nil {
		return nil, err
	}

	stats := ledger.Stats()
	log.WithFields(log.Fields{
		"rows":              stats.Rows,
		"kept":              stats.Kept,
		"droppedTimestamps": stats.DroppedTimestamps,
		"repairedAmounts":   stats.RepairedAmounts,
	}).Info("Ledger ingested")

	return ledger, nil
}

// Generate filters the ledger to the window and builds totals and per-game tables
func (s *reportService) Generate(ctx context.Context, ledger *Ledger, window models.TimeWindow) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, fmt.Errorf("failed to generate report: no ledger")
	}

	filtered := FilterWindow(ledger.records, window)
	eligible, nonEligible := Classify(filtered, s.eligibility)

	report := &models.Report{
		Window:      window,
		Summary:     Summarize(eligible, nonEligible),
		Eligible:    AggregateByGame(eligible),
		NonEligible: AggregateByGame(nonEligible),
		Clients:     DistinctClients(filtered),
		Records:     filtered,
	}

	if report.IsEmpty() {
		log.WithFields(log.Fields{
			"start": window.Start,
			"end":   window.End,
		}).Info("No wagers inside report window")
		return report, ErrEmptyResult
	}

	log.WithFields(log.Fields{
		"rounds":           len(filtered),
		"eligibleGames":    len(report.Eligible),
		"nonEligibleGames": len(report.NonEligible),
		"totalOverall":     report.Summary.TotalOverall.StringFixed(2),
	}).Debug("Report generated")

	return report, nil
}

// Eligibility returns the list used for classification
func (s *reportService) Eligibility() *EligibilityList {
	return s.eligibility
}
