package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"betreport/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Ledger column headers
const (
	ColumnGameName     = "Game Name"
	ColumnBet          = "Bet"
	ColumnCreationDate = "Creation Date"
	ColumnClient       = "Client"
)

// RequiredColumns must all be present in a ledger header
var RequiredColumns = []string{ColumnGameName, ColumnBet, ColumnCreationDate, ColumnClient}

// Layouts tried in order when reading Creation Date. Month-first for slashed dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IngestOptions controls ledger parsing
type IngestOptions struct {
	// Location applies to timestamps that carry no offset. Nil means UTC.
	Location *time.Location
	// MaxRows caps the number of data rows. Zero means unlimited.
	MaxRows int
}

// Ledger is an ingested, immutable sequence of wager records
type Ledger struct {
	records []models.WagerRecord
	stats   models.IngestStats
}

// NewLedger wraps already-normalized records
func NewLedger(records []models.WagerRecord) *Ledger {
	owned := make([]models.WagerRecord, len(records))
	copy(owned, records)
	return &Ledger{
		records: owned,
		stats: models.IngestStats{
			Rows: len(owned),
			Kept: len(owned),
		},
	}
}

// Records returns a copy of the ledger's records
func (l *Ledger) Records() []models.WagerRecord {
	out := make([]models.WagerRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of kept records
func (l *Ledger) Len() int {
	return len(l.records)
}

// Stats returns the ingestion counters
func (l *Ledger) Stats() models.IngestStats {
	return l.stats
}

// ParseLedger reads a delimited ledger with a header row into normalized records.
// Rows with an unreadable Creation Date are dropped; unreadable Bet values become 0.
func ParseLedger(r io.Reader, opts IngestOptions) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: sortedCopy(RequiredColumns)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	ledger := &Ledger{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger row %d: %w", ledger.stats.Rows+1, err)
		}
		ledger.stats.Rows++
		if opts.MaxRows > 0 && ledger.stats.Rows > opts.MaxRows {
			return nil, fmt.Errorf("%w: limit is %d", ErrLedgerTooLarge, opts.MaxRows)
		}

		createdAt, ok := parseTimestamp(cell(row, cols.createdAt), loc)
		if !ok {
			ledger.stats.DroppedTimestamps++
			log.WithFields(log.Fields{
				"row":   ledger.stats.Rows,
				"value": cell(row, cols.createdAt),
			}).Debug("Dropping ledger row with unreadable creation date")
			continue
		}

		amount, ok := parseAmount(cell(row, cols.bet))
		if !ok {
			ledger.stats.RepairedAmounts++
			log.WithFields(log.Fields{
				"row":   ledger.stats.Rows,
				"value": cell(row, cols.bet),
			}).Debug("Unreadable bet amount, using 0")
		}

		ledger.records = append(ledger.records, models.WagerRecord{
			Row:       ledger.stats.Rows,
			GameName:  cell(row, cols.gameName),
			Amount:    amount,
			CreatedAt: createdAt,
			Client:    cell(row, cols.client),
		})
	}
	ledger.stats.Kept = len(ledger.records)

	return ledger, nil
}

type columnIndex struct {
	gameName  int
	bet       int
	createdAt int
	client    int
}

func indexColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := positions[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return columnIndex{}, &SchemaError{Missing: missing}
	}

	return columnIndex{
		gameName:  positions[ColumnGameName],
		bet:       positions[ColumnBet],
		createdAt: positions[ColumnCreationDate],
		client:    positions[ColumnClient],
	}, nil
}

// detectDelimiter picks ';' only when the header line has semicolons and no commas
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if !bytes.ContainsRune(line, ',') && bytes.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func parseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseAmount(value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
