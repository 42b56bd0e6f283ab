package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/wisteria0793/scorpion/internal/domain"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

// The CSV schema is exactly three columns. blackout_reason never
// round-trips through it.
var csvColumns = []string{"date", "price", "blackout"}

// CSVCodec converts calendar state to and from the import/export CSV
// representation. Parsing never aborts on a single bad row; the
// all-or-nothing decision belongs to the bulk editor.
type CSVCodec interface {
	Parse(text string) ([]pricingdto.ImportRecord, []pricingdto.ParseError)
	Serialize(ctx context.Context, propertyID string, start, end domain.Day) (string, error)
	Import(ctx context.Context, propertyID string, text string) (*pricingdto.ApplyResult, error)
}

type DefaultCSVCodec struct {
	PropertyRepo domain.PropertyRepository
	CalendarRepo domain.CalendarRepository
	Editor       BulkEditor
}

func NewDefaultCSVCodec(propertyRepo domain.PropertyRepository, calendarRepo domain.CalendarRepository, editor BulkEditor) *DefaultCSVCodec {
	return &DefaultCSVCodec{
		PropertyRepo: propertyRepo,
		CalendarRepo: calendarRepo,
		Editor:       editor,
	}
}

// Parse reads `date,price,blackout` rows. Malformed rows are collected
// as errors and excluded from the records; unrecognized extra columns
// are ignored with a warning. Reported line numbers refer to the input
// text as uploaded, blank lines included.
func (c *DefaultCSVCodec) Parse(text string) ([]pricingdto.ImportRecord, []pricingdto.ParseError) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []pricingdto.ParseError{{Line: 1, Reason: "missing header row"}}
	}
	headerLine, _ := reader.FieldPos(0)

	columns := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, known := columns[name]; !known {
			columns[name] = i
		}
		if name != "date" && name != "price" && name != "blackout" {
			slog.Warn("ignoring unrecognized CSV column", "column", name)
		}
	}
	for _, required := range csvColumns {
		if _, ok := columns[required]; !ok {
			return nil, []pricingdto.ParseError{{Line: headerLine, Reason: fmt.Sprintf("missing required column %q", required)}}
		}
	}

	var records []pricingdto.ImportRecord
	var errs []pricingdto.ParseError
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			errs = append(errs, pricingdto.ParseError{Line: line, Reason: "unreadable row"})
			continue
		}
		line, _ := reader.FieldPos(0)

		record, reason := parseImportRow(columns, row)
		if reason != "" {
			errs = append(errs, pricingdto.ParseError{Line: line, Reason: reason})
			continue
		}
		record.Line = line
		records = append(records, record)
	}

	return records, errs
}

func parseImportRow(columns map[string]int, row []string) (pricingdto.ImportRecord, string) {
	var record pricingdto.ImportRecord

	get := func(name string) (string, bool) {
		i := columns[name]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	dateField, ok := get("date")
	if !ok || dateField == "" {
		return record, "missing date"
	}
	if _, err := domain.ParseDay(dateField); err != nil {
		return record, err.Error()
	}
	record.Date = dateField

	if priceField, ok := get("price"); ok && priceField != "" {
		price, err := strconv.ParseInt(priceField, 10, 64)
		if err != nil {
			return record, fmt.Sprintf("price %q is not an integer", priceField)
		}
		if price < 0 {
			return record, fmt.Sprintf("price %d is negative", price)
		}
		record.Price = &price
	}

	blackoutField, ok := get("blackout")
	if !ok {
		return record, "missing blackout flag"
	}
	switch blackoutField {
	case "true":
		record.IsBlackout = true
	case "false":
		record.IsBlackout = false
	default:
		return record, fmt.Sprintf("blackout flag %q is not true/false", blackoutField)
	}

	return record, ""
}

// Serialize exports one row per calendar day in [start, end]: the
// override price when present, the base price otherwise, and the
// blackout flag. Ascending date order.
func (c *DefaultCSVCodec) Serialize(ctx context.Context, propertyID string, start, end domain.Day) (string, error) {
	if end.Before(start) {
		return "", domain.NewValidationError("range end %s before start %s", end, start)
	}

	property, err := c.PropertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return "", err
	}

	overrides, err := c.CalendarRepo.GetRange(ctx, propertyID, start, end)
	if err != nil {
		return "", err
	}
	byDate := overridesByDate(overrides)

	var builder strings.Builder
	writer := csv.NewWriter(&builder)
	writer.Write(csvColumns)

	for day := start; !day.After(end); day = day.Next() {
		price := property.Settings.BasePrice
		blackout := false
		if override, ok := byDate[day.String()]; ok {
			blackout = override.IsBlackout
			if override.Price != nil {
				price = *override.Price
			}
		}
		writer.Write([]string{
			day.String(),
			strconv.FormatInt(price, 10),
			strconv.FormatBool(blackout),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return builder.String(), nil
}

// Import feeds parsed records through the bulk editor. Parse failures
// reject only their own lines; the parsed remainder is applied
// all-or-nothing by the editor. Existing min-nights overrides are
// carried forward since the CSV schema cannot express them, which
// keeps import(export(range)) resolution-identical.
func (c *DefaultCSVCodec) Import(ctx context.Context, propertyID string, text string) (*pricingdto.ApplyResult, error) {
	property, err := c.PropertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	records, parseErrs := c.Parse(text)

	rejected := make([]pricingdto.RejectedRow, 0, len(parseErrs))
	for _, parseErr := range parseErrs {
		rejected = append(rejected, pricingdto.RejectedRow{Index: parseErr.Line, Reason: parseErr.Reason})
	}

	if len(records) == 0 {
		return &pricingdto.ApplyResult{Applied: 0, Rejected: rejected}, nil
	}

	existing, err := c.existingForRecords(ctx, propertyID, records)
	if err != nil {
		return nil, err
	}

	rows := make([]pricingdto.UpdateRow, len(records))
	for i, record := range records {
		rows[i] = recordToRow(property.Settings, record, existing[record.Date])
	}

	result, err := c.Editor.ApplyUpdates(ctx, propertyID, rows, domain.SourceCSV)
	if err != nil {
		return nil, err
	}

	// Report bulk rejections by their CSV line, matching parse errors.
	for _, row := range result.Rejected {
		rejected = append(rejected, pricingdto.RejectedRow{Index: records[row.Index].Line, Reason: row.Reason})
	}

	return &pricingdto.ApplyResult{Applied: result.Applied, Rejected: rejected}, nil
}

func (c *DefaultCSVCodec) existingForRecords(ctx context.Context, propertyID string, records []pricingdto.ImportRecord) (map[string]*domain.DateOverride, error) {
	var start, end domain.Day
	for i, record := range records {
		day, err := domain.ParseDay(record.Date)
		if err != nil {
			continue
		}
		if i == 0 || day.Before(start) {
			start = day
		}
		if i == 0 || day.After(end) {
			end = day
		}
	}

	overrides, err := c.CalendarRepo.GetRange(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}

	return overridesByDate(overrides), nil
}

func recordToRow(settings domain.BasicSettings, record pricingdto.ImportRecord, existing *domain.DateOverride) pricingdto.UpdateRow {
	row := pricingdto.UpdateRow{
		Date:       record.Date,
		Price:      record.Price,
		IsBlackout: record.IsBlackout,
	}
	if existing != nil {
		row.MinNights = existing.MinNights
	}

	// A non-blackout row priced at base carries no information of its
	// own; collapse it so the store keeps only records that differ
	// from base.
	if !row.IsBlackout && row.Price != nil && *row.Price == settings.BasePrice {
		row.Price = nil
	}

	return row
}

func overridesByDate(overrides []*domain.DateOverride) map[string]*domain.DateOverride {
	byDate := make(map[string]*domain.DateOverride, len(overrides))
	for _, override := range overrides {
		byDate[override.Date.String()] = override
	}
	return byDate
}
