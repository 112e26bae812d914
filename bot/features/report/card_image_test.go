package report

import (
	"bytes"
	"image/png"
	"testing"

	"betreport/models"
	"betreport/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCardGenerator_Generate(t *testing.T) {
	generator := NewSummaryCardGenerator()
	report := &models.Report{
		Window: testutil.CreateTestWindow("2024-01-01 00:00", "2024-01-01 23:59"),
		Summary: models.Summary{
			TotalOverall:     decimal.NewFromInt(30),
			TotalEligible:    decimal.NewFromInt(10),
			TotalNonEligible: decimal.NewFromInt(20),
		},
	}

	data, err := generator.Generate(report)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	width, height := generator.Size()
	assert.Equal(t, width, img.Bounds().Dx())
	assert.Equal(t, height, img.Bounds().Dy())
}

func TestSummaryCardGenerator_EmptyReport(t *testing.T) {
	data, err := NewSummaryCardGenerator().Generate(&models.Report{
		Window: testutil.CreateTestWindow("2024-01-01 00:00", "2024-01-01 23:59"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
