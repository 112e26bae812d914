package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"betreport/config"
	"betreport/models"
	"betreport/service"
)

// ReportUsage describes the report subcommand arguments
const ReportUsage = "usage: betreport report <ledger.csv> <start-date> <start-time> <end-date> <end-time> [export.csv]"

// RunReport runs one report over a ledger file and prints it to out.
// An empty window is reported on out and is not an error.
func RunReport(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 5 || len(args) > 6 {
		return errors.New(ReportUsage)
	}
	ledgerPath, startDate, startClock, endDate, endClock := args[0], args[1], args[2], args[3], args[4]

	reportService := newReportService(cfg)

	file, err := os.Open(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	ledger, err := reportService.Ingest(ctx, file)
	if err != nil {
		return err
	}

	window, err := service.NewTimeWindow(startDate, startClock, endDate, endClock, cfg.Location)
	if err != nil {
		return err
	}

	report, err := reportService.Generate(ctx, ledger, window)
	if errors.Is(err, service.ErrEmptyResult) {
		fmt.Fprintf(out, "⚠️  No wagers found for the selected period (%s).\n", service.FormatWindow(window))
		return nil
	}
	if err != nil {
		return err
	}

	printReport(out, report)

	if len(args) == 6 {
		if err := writeExport(args[5], report.Records); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nExported %d wagers to %s\n", len(report.Records), args[5])
	}

	return nil
}

// RunGames prints the eligibility list, one game per line
func RunGames(out io.Writer) {
	for _, name := range service.DefaultEligibilityList().Names() {
		fmt.Fprintln(out, name)
	}
}

func printReport(out io.Writer, report *models.Report) {
	fmt.Fprintf(out, "Wager report %s\n", service.FormatWindow(report.Window))
	if client, ok := report.SingleClient(); ok {
		fmt.Fprintf(out, "Client: %s\n", client)
	} else {
		fmt.Fprintf(out, "Clients: %d\n", len(report.Clients))
		for _, client := range report.Clients {
			fmt.Fprintf(out, "  - %s\n", client)
		}
	}
	fmt.Fprintf(out, "Rounds: %d\n\n", report.RoundCount())

	fmt.Fprintf(out, "%-16s %s\n", "Total wagered:", service.FormatCurrency(report.Summary.TotalOverall))
	fmt.Fprintf(out, "%-16s %s\n", "Eligible:", service.FormatCurrency(report.Summary.TotalEligible))
	fmt.Fprintf(out, "%-16s %s\n", "Non-eligible:", service.FormatCurrency(report.Summary.TotalNonEligible))

	fmt.Fprintf(out, "\nEligible games (%d)\n", len(report.Eligible))
	fmt.Fprint(out, service.RenderTable(report.Eligible))

	fmt.Fprintf(out, "\nNon-eligible games (%d)\n", len(report.NonEligible))
	fmt.Fprint(out, service.RenderTable(report.NonEligible))
}

func writeExport(path string, records []models.WagerRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}

	if err := service.WriteLedgerCSV(file, records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"records": len(records),
	}).Debug("Export written")
	return nil
}
