// Package sheets persists accounts and diary records in one Google
// spreadsheet: a "users" sheet with credential rows and one sheet per user
// ID holding that user's records.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/seoyeon-oh/maum-diary/backend/internal/apperr"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/account"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
)

const usersRange = "users!A:C"

// Store implements account.Store and diary.RecordStore against the Google
// Sheets API. All writes are appends; last write wins.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New builds the store from a service-account credentials file.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Store, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// FindUserID resolves an email to its user ID by scanning users!A:C.
func (s *Store) FindUserID(ctx context.Context, email string) (string, error) {
	rows, err := s.userRows(ctx)
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		if len(row) > 2 && cellString(row[0]) == email {
			return cellString(row[2]), nil
		}
	}
	return "", account.ErrNotFound
}

// CreateUser appends a credential row, creates the user's record sheet and
// writes its header. A partially provisioned user is not rolled back.
func (s *Store) CreateUser(ctx context.Context, email, password string) (string, error) {
	userID := uuid.NewString()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "비밀번호 처리 중 오류가 발생했습니다", err)
	}

	credentialRow := &sheets.ValueRange{
		Values: [][]interface{}{{email, string(hash), userID}},
	}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, "users!A1", credentialRow).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError("failed to append credential row", err)
	}

	addSheet := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: userID},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, addSheet).Context(ctx).Do(); err != nil {
		return "", wrapAPIError("failed to create record sheet", err)
	}

	header := make([]interface{}, len(diary.HeaderRow))
	for i, cell := range diary.HeaderRow {
		header[i] = cell
	}
	headerRange := fmt.Sprintf("'%s'!A1", userID)
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, headerRange, &sheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError("failed to write record sheet header", err)
	}

	log.Printf("[sheets] registered user %s with record sheet %s", email, userID)
	return userID, nil
}

// VerifyCredentials scans users!A:C top to bottom. The first row matching
// the email decides the outcome, even if a later row also matches.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (string, error) {
	rows, err := s.userRows(ctx)
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		if cellString(row[0]) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(cellString(row[1])), []byte(password)) != nil {
			return "", account.ErrBadCredentials
		}
		return cellString(row[2]), nil
	}
	return "", account.ErrNotFound
}

// AppendRecord appends [timestamp, emotion, category, text, x, y, z] to the
// user's sheet.
func (s *Store) AppendRecord(ctx context.Context, userID string, analysis diary.Analysis, text string, pos diary.Position) error {
	row := &sheets.ValueRange{
		Values: [][]interface{}{{
			analysis.Timestamp, analysis.Emotion, analysis.Category, text, pos.X, pos.Y, pos.Z,
		}},
	}

	recordRange := fmt.Sprintf("'%s'!A:G", userID)
	result, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, recordRange, row).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return wrapAPIError("일기 저장 중 오류가 발생했습니다", err)
	}

	if result.Updates != nil {
		log.Printf("[sheets] appended %d cells for user sheet %s", result.Updates.UpdatedCells, userID)
	}
	return nil
}

// ListRecords reads the user's sheet. A sheet that does not exist yet is an
// empty success; the header row and short rows are skipped.
func (s *Store) ListRecords(ctx context.Context, userID string) ([]diary.Record, error) {
	recordRange := fmt.Sprintf("'%s'!A:G", userID)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, recordRange).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			log.Printf("[sheets] no record sheet for user %s yet, returning empty list", userID)
			return []diary.Record{}, nil
		}
		return nil, wrapAPIError("기록을 불러오는 중 오류가 발생했습니다", err)
	}

	records := make([]diary.Record, 0, len(resp.Values))
	for i, row := range resp.Values {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if len(row) < 7 {
			continue
		}
		records = append(records, diary.Record{
			Timestamp: cellString(row[0]),
			Emotion:   cellString(row[1]),
			Category:  cellString(row[2]),
			Text:      cellString(row[3]),
			Position: diary.Position{
				X: cellFloat(row[4]),
				Y: cellFloat(row[5]),
				Z: cellFloat(row[6]),
			},
		})
	}
	return records, nil
}

func (s *Store) userRows(ctx context.Context) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, usersRange).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("사용자 데이터를 읽는 중 오류가 발생했습니다", err)
	}
	return resp.Values, nil
}

// isMissingSheet detects the API's reaction to a range naming a sheet that
// does not exist: 400 "Unable to parse range".
func isMissingSheet(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 400 && containsParseRange(apiErr)
}

func containsParseRange(apiErr *googleapi.Error) bool {
	if apiErr.Message != "" {
		return strings.Contains(apiErr.Message, "Unable to parse range")
	}
	return strings.Contains(apiErr.Body, "Unable to parse range")
}

func isHeaderRow(row []interface{}) bool {
	if len(row) != len(diary.HeaderRow) {
		return false
	}
	for i, cell := range row {
		if cellString(cell) != diary.HeaderRow[i] {
			return false
		}
	}
	return true
}

func wrapAPIError(message string, err error) error {
	return apperr.Wrap(apperr.KindUpstream, message, err)
}

func cellString(cell interface{}) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

func cellFloat(cell interface{}) float64 {
	switch v := cell.(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
