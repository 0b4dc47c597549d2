// Package sheets persists the application tracking table in a Google
// spreadsheet. One row per job posting; columns are addressed by header name
// so the sheet can be rearranged without code changes.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const readScope = sheetsapi.SpreadsheetsScope

type Store struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

// NewStore opens the spreadsheet using a service account key file, or
// application default credentials when credentialsFile is empty.
func NewStore(ctx context.Context, logger *zap.Logger, spreadsheetID, sheetName, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile), option.WithScopes(readScope))
	} else {
		ts, err := google.DefaultTokenSource(ctx, readScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: default credentials: %w", err)
		}
		opts = append(opts, option.WithTokenSource(ts))
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Store{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}, nil
}

// Row is one sheet row with values keyed by header name. Number is the
// 1-based row index in the sheet, including the header row.
type Row struct {
	Number int
	Values map[string]string
}

func (r *Row) Get(column string) string {
	return r.Values[column]
}

// Headers returns the header row. An empty sheet yields an empty slice.
func (s *Store) Headers(ctx context.Context) ([]string, error) {
	rng := fmt.Sprintf("%s!1:1", s.sheetName)
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read headers: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	headers := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		headers = append(headers, strings.TrimSpace(fmt.Sprint(cell)))
	}
	return headers, nil
}

// Init writes DefaultHeaders into an empty sheet. A sheet that already has a
// header row is left untouched.
func (s *Store) Init(ctx context.Context) error {
	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}
	if len(headers) > 0 {
		return nil
	}

	row := make([]any, len(DefaultHeaders))
	for i, h := range DefaultHeaders {
		row[i] = h
	}
	vr := &sheetsapi.ValueRange{Values: [][]any{row}}
	_, err = s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!A1", s.sheetName), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: write headers: %w", err)
	}

	s.logger.Info("initialized sheet headers", zap.Int("columns", len(DefaultHeaders)))
	return nil
}

// Rows reads every data row. Cells beyond a row's last populated column are
// absent from the map, so callers see "" for them via Get.
func (s *Store) Rows(ctx context.Context) ([]*Row, error) {
	headers, err := s.Headers(ctx)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read rows: %w", err)
	}

	var rows []*Row
	for i, raw := range resp.Values {
		if i == 0 {
			continue
		}
		rows = append(rows, mapRow(headers, i+1, raw))
	}
	return rows, nil
}

// RowsWithStatus reads the rows currently in the given status.
func (s *Store) RowsWithStatus(ctx context.Context, status string) ([]*Row, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*Row
	for _, row := range rows {
		if row.Get(ColStatus) == status {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// ExistingJobIDs returns the set of job ids already present in the sheet.
func (s *Store) ExistingJobIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if id := row.Get(ColJobID); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// Append adds new rows, laying each record out in header order. Columns that
// a record does not set are written as empty strings.
func (s *Store) Append(ctx context.Context, records []map[string]string) error {
	if len(records) == 0 {
		return nil
	}

	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return fmt.Errorf("sheets: sheet has no header row, run init first")
	}

	values := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = record[h]
		}
		values = append(values, row)
	}

	vr := &sheetsapi.ValueRange{Values: values}
	_, err = s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append rows: %w", err)
	}

	s.logger.Info("appended rows", zap.Int("count", len(values)))
	return nil
}

// Update writes the given column values into an existing row, one batched
// request per call. Columns missing from the header row are rejected.
func (s *Store) Update(ctx context.Context, rowNumber int, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	var data []*sheetsapi.ValueRange
	for column, value := range values {
		col, ok := index[column]
		if !ok {
			return fmt.Errorf("sheets: unknown column %q", column)
		}
		rng := fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(col), rowNumber)
		data = append(data, &sheetsapi.ValueRange{
			Range:  rng,
			Values: [][]any{{value}},
		})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: update row %d: %w", rowNumber, err)
	}
	return nil
}

func mapRow(headers []string, number int, raw []any) *Row {
	values := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(raw) {
			values[h] = fmt.Sprint(raw[i])
		}
	}
	return &Row{Number: number, Values: values}
}

// columnLetter converts a zero-based column index to A1 notation.
func columnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}
