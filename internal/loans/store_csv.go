package loans

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CSVStore keeps all records in one semicolon-delimited file with a header
// row. Every mutation reads the whole file and rewrites it through a temp
// file + rename, so a crash mid-write never leaves a half-written store.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) (*CSVStore, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, NewUnavailableError("file store: " + err.Error())
	}
	return &CSVStore{path: path}, nil
}

func (s *CSVStore) Add(ctx context.Context, rec *LoanRecord) (string, error) {
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

func (s *CSVStore) LoadAll(ctx context.Context) ([]LoanRecord, error) {
	return s.readAll()
}

func (s *CSVStore) Update(ctx context.Context, id string, rec *LoanRecord) error {
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

func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) readAll() ([]LoanRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []LoanRecord{}, nil
		}
		return nil, NewUnavailableError("file store: " + err.Error())
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, NewUnavailableError("file store: " + err.Error())
	}
	if len(rows) <= 1 {
		return []LoanRecord{}, nil
	}

	out := make([]LoanRecord, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		rec, err := decodeRow(row)
		if err != nil {
			return nil, NewInternalError(fmt.Sprintf("file store line %d: %v", i+2, err))
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *CSVStore) writeAll(recs []LoanRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".emprestimos-*.csv")
	if err != nil {
		return NewUnavailableError("file store: " + err.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	w.Comma = ';'
	if err := w.Write(storeHeader); err != nil {
		_ = tmp.Close()
		return NewUnavailableError("file store: " + err.Error())
	}
	for i := range recs {
		if err := w.Write(encodeRow(&recs[i])); err != nil {
			_ = tmp.Close()
			return NewUnavailableError("file store: " + err.Error())
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return NewUnavailableError("file store: " + err.Error())
	}
	if err := tmp.Close(); err != nil {
		return NewUnavailableError("file store: " + err.Error())
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return NewUnavailableError("file store: " + err.Error())
	}
	return nil
}
