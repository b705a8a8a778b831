package loans

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXStore keeps all records on one sheet of a workbook, header row first.
// Like the CSV backend it rewrites the whole file on every mutation.
type XLSXStore struct {
	path  string
	sheet string
}

func NewXLSXStore(path, sheet string) (*XLSXStore, error) {
	if path == "" {
		return nil, errors.New("spreadsheet store path is required")
	}
	if sheet == "" {
		sheet = "Emprestimos"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, NewUnavailableError("spreadsheet store: " + err.Error())
	}
	return &XLSXStore{path: path, sheet: sheet}, nil
}

func (s *XLSXStore) Add(ctx context.Context, rec *LoanRecord) (string, error) {
	recs, err := s.readAll()
	if err != nil {
		return "", err
	}

	id, err := newRecordID()
	if err != nil {
		return "", NewInternalError("id generation: " + err.Error())
	}
	rec.ID = id

	recs = append(recs, *rec)
	if err := s.writeAll(recs); err != nil {
		return "", err
	}
	return id, nil
}

func (s *XLSXStore) LoadAll(ctx context.Context) ([]LoanRecord, error) {
	return s.readAll()
}

func (s *XLSXStore) Update(ctx context.Context, id string, rec *LoanRecord) error {
	recs, err := s.readAll()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].ID == id {
			updated := *rec
			updated.ID = id
			recs[i] = updated
			return s.writeAll(recs)
		}
	}
	return NewNotFoundError("loan " + id + " not found")
}

func (s *XLSXStore) Close() error { return nil }

func (s *XLSXStore) readAll() ([]LoanRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []LoanRecord{}, nil
		}
		return nil, NewUnavailableError("spreadsheet store: " + err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, NewUnavailableError("spreadsheet store: " + err.Error())
	}
	if len(rows) <= 1 {
		return []LoanRecord{}, nil
	}

	out := make([]LoanRecord, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		rec, err := decodeRow(row)
		if err != nil {
			return nil, NewInternalError(fmt.Sprintf("spreadsheet row %d: %v", i+2, err))
		}
		if rec.ID == "" {
			continue // blank trailing row
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *XLSXStore) writeAll(recs []LoanRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
		return NewInternalError("spreadsheet store: " + err.Error())
	}

	header := make([]any, len(storeHeader))
	for i, h := range storeHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return NewInternalError("spreadsheet store: " + err.Error())
	}

	for i := range recs {
		cells := encodeRow(&recs[i])
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return NewInternalError("spreadsheet store: " + err.Error())
		}
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			return NewInternalError("spreadsheet store: " + err.Error())
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return NewUnavailableError("spreadsheet store: " + err.Error())
	}
	return nil
}
