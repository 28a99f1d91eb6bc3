package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// SheetsStore is the Store backed by the Google Sheets v4 values API.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore authenticates with the service-account email and key from
// cfg when both are set, else with cfg.CredentialsFile, else with
// application default credentials.
func NewSheetsStore(ctx context.Context, cfg Config) (*SheetsStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheet: GOOGLE_SHEET_ID is required")
	}
	var opts []option.ClientOption
	switch {
	case cfg.ClientEmail != "" && cfg.PrivateKey != "":
		jc := &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: []byte(cfg.PrivateKey),
			Scopes:     []string{cfg.Scope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithTokenSource(jc.TokenSource(ctx)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile), option.WithScopes(cfg.Scope))
	default:
		opts = append(opts, option.WithScopes(cfg.Scope))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: sheets client: %w", apperrors.ErrRemoteUnavailable, err)
	}
	return NewSheetsStoreWithService(svc, cfg.SpreadsheetID), nil
}

// NewSheetsStoreWithService wraps an already configured service.
func NewSheetsStoreWithService(svc *sheets.Service, spreadsheetID string) *SheetsStore {
	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID}
}

func (s *SheetsStore) ReadTable(ctx context.Context, name string) (Grid, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, name).Context(ctx).Do()
	if err != nil {
		return nil, classify("read", name, err)
	}
	grid := make(Grid, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		grid[i] = cells
	}
	return grid, nil
}

func (s *SheetsStore) AppendRows(ctx context.Context, name string, rows Grid) error {
	vr := &sheets.ValueRange{Values: toValues(rows)}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, name, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return classify("append", name, err)
	}
	return nil
}

func (s *SheetsStore) WriteCell(ctx context.Context, name string, row, col int, value string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, CellRange(name, row, col), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify("write", name, err)
	}
	return nil
}

// classify maps Sheets API failures onto the store error taxonomy. An unknown
// sheet name comes back as a 400 "Unable to parse range".
func classify(op, table string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusNotFound ||
			(gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range")) {
			return fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, table)
		}
	}
	return fmt.Errorf("%w: %s %s: %w", apperrors.ErrRemoteUnavailable, op, table, err)
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func toValues(rows Grid) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		vals := make([]interface{}, len(row))
		for j, c := range row {
			vals[j] = c
		}
		out[i] = vals
	}
	return out
}
