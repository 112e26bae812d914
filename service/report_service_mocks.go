package service

import (
	"context"
	"io"

	"betreport/models"

	"github.com/stretchr/testify/mock"
)

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Ingest(ctx context.Context, r io.Reader) (*Ledger, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Ledger), args.Error(1)
}

func (m *MockReportService) Generate(ctx context.Context, ledger *Ledger, window models.TimeWindow) (*models.Report, error) {
	args := m.Called(ctx, ledger, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportService) Eligibility() *EligibilityList {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*EligibilityList)
}
