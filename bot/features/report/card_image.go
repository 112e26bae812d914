package report

import (
	"bytes"
	"fmt"
	"time"

	"betreport/models"
	"betreport/service"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// SummaryCardFilename is the attachment name of the summary card
const SummaryCardFilename = "summary.png"

// card is one coloured total on the summary image
type card struct {
	Title string
	Value string
	Color [3]float64
}

// CardStyle defines the layout of the summary image
type CardStyle struct {
	CardWidth  int
	CardHeight int
	Gap        int
	Padding    int
	CaptionH   int
}

// SummaryCardGenerator renders the three report totals as coloured cards
type SummaryCardGenerator struct {
	style CardStyle
}

// NewSummaryCardGenerator creates a generator with the default style
func NewSummaryCardGenerator() *SummaryCardGenerator {
	return &SummaryCardGenerator{
		style: CardStyle{
			CardWidth:  240,
			CardHeight: 110,
			Gap:        16,
			Padding:    20,
			CaptionH:   30,
		},
	}
}

// Size returns the pixel dimensions of generated images
func (g *SummaryCardGenerator) Size() (width, height int) {
	width = g.style.Padding*2 + g.style.CardWidth*3 + g.style.Gap*2
	height = g.style.Padding*2 + g.style.CardHeight + g.style.CaptionH
	return width, height
}

// Generate renders the report summary to PNG bytes
func (g *SummaryCardGenerator) Generate(report *models.Report) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			Debug("Summary card generation completed")
	}()

	cards := []card{
		{Title: "Total Wagered", Value: service.FormatCurrency(report.Summary.TotalOverall), Color: [3]float64{0.16, 0.38, 0.85}},
		{Title: "Eligible", Value: service.FormatCurrency(report.Summary.TotalEligible), Color: [3]float64{0.13, 0.6, 0.33}},
		{Title: "Non-Eligible", Value: service.FormatCurrency(report.Summary.TotalNonEligible), Color: [3]float64{0.8, 0.2, 0.2}},
	}

	width, height := g.Size()
	dc := gg.NewContext(width, height)

	// Dark background
	dc.SetRGB(0.09, 0.1, 0.13)
	dc.Clear()

	titleFace, err := loadFont(goregular.TTF, 15)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	valueFace, err := loadFont(gobold.TTF, 24)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	y := float64(g.style.Padding)
	for i, c := range cards {
		x := float64(g.style.Padding + i*(g.style.CardWidth+g.style.Gap))
		w := float64(g.style.CardWidth)
		h := float64(g.style.CardHeight)

		dc.SetRGB(c.Color[0], c.Color[1], c.Color[2])
		dc.DrawRoundedRectangle(x, y, w, h, 12)
		dc.Fill()

		dc.SetRGBA(1, 1, 1, 0.85)
		dc.SetFontFace(titleFace)
		dc.DrawStringAnchored(c.Title, x+w/2, y+h*0.3, 0.5, 0.5)

		dc.SetRGB(1, 1, 1)
		dc.SetFontFace(valueFace)
		dc.DrawStringAnchored(c.Value, x+w/2, y+h*0.65, 0.5, 0.5)
	}

	// Caption with the window
	dc.SetRGB(0.75, 0.75, 0.8)
	dc.SetFontFace(titleFace)
	caption := fmt.Sprintf("%s  ·  %d rounds", service.FormatWindow(report.Window), report.RoundCount())
	dc.DrawStringAnchored(caption, float64(width)/2, y+float64(g.style.CardHeight)+float64(g.style.CaptionH)/2+4, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, nil
}
