package loans

import (
	"context"
	"sort"
	"strings"
	"time"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Service struct {
	store RecordStore
	clock Clock
}

func NewService(store RecordStore) *Service {
	return &Service{store: store, clock: realClock{}}
}

// Create validates an intake submission and persists it. Any missing
// required field or unacknowledged declaration rejects the whole request;
// nothing is written in that case.
func (s *Service) Create(ctx context.Context, req CreateLoanRequest) (*LoanResponse, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return nil, NewInvalidArgumentError("missing required fields: " + strings.Join(missing, ", "))
	}
	if !req.RulesAccepted || !req.InfoConfirmed {
		return nil, NewInvalidArgumentError("all declarations must be acknowledged")
	}

	licenseExpiry, err := parseDate(req.LicenseExpiry)
	if err != nil {
		return nil, NewInvalidArgumentError("license_expiry: " + err.Error())
	}
	expectedReturn, err := parseDate(req.ExpectedReturn)
	if err != nil {
		return nil, NewInvalidArgumentError("expected_return: " + err.Error())
	}

	rec := &LoanRecord{
		RequesterName:   req.RequesterName,
		RequesterEmail:  req.RequesterEmail,
		IPN:             req.IPN,
		Department:      req.Department,
		Phone:           req.Phone,
		LicenseNumber:   req.LicenseNumber,
		LicenseExpiry:   licenseExpiry,
		SupervisorName:  req.SupervisorName,
		SupervisorEmail: req.SupervisorEmail,
		VehicleSV:       req.VehicleSV,
		Project:         req.Project,
		NeedsCard:       req.NeedsCard,
		Overnight:       req.Overnight,
		Reason:          req.Reason,
		ExpectedReturn:  expectedReturn,
		RegisteredAt:    s.clock.Now(),
		Plate:           req.Plate,
		DeclarationAck:  true,
	}

	if _, err := s.store.Add(ctx, rec); err != nil {
		return nil, err
	}

	resp := buildLoanResponse(rec, DeriveStatus(rec, s.clock.Now()))
	return &resp, nil
}

// List loads every record, annotates status, applies the filter and returns
// rows newest-first together with the fixed column layout.
func (s *Service) List(ctx context.Context, f Filter) (*ListLoansResponse, error) {
	recs, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	// backend order is not meaningful; sort before presenting
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].RegisteredAt.Equal(recs[j].RegisteredAt) {
			return recs[i].RegisteredAt.After(recs[j].RegisteredAt)
		}
		return recs[i].ID > recs[j].ID
	})

	now := s.clock.Now()
	items := make([]LoanResponse, 0, len(recs))
	for i := range recs {
		st := DeriveStatus(&recs[i], now)
		if !f.Matches(&recs[i], st) {
			continue
		}
		items = append(items, buildLoanResponse(&recs[i], st))
	}

	return &ListLoansResponse{
		Columns: Columns(),
		Items:   items,
		Total:   len(items),
	}, nil
}

// Update replaces the full field set of one record. Identity and the
// registration timestamp are immutable: stored values win over whatever the
// edit carries.
func (s *Service) Update(ctx context.Context, id string, edit LoanEdit) (*LoanResponse, error) {
	if id == "" {
		return nil, NewInvalidArgumentError("id is required")
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := applyEdit(existing, edit)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, id, rec); err != nil {
		return nil, err
	}

	resp := buildLoanResponse(rec, DeriveStatus(rec, s.clock.Now()))
	return &resp, nil
}

// Reconcile takes the edited grid snapshot and writes back every row that
// differs from the stored record. Rows without an id are skipped (creation
// goes through intake only); failures are reported per row.
func (s *Service) Reconcile(ctx context.Context, rows []LoanEdit) (*ReconcileResponse, error) {
	recs, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*LoanRecord, len(recs))
	for i := range recs {
		byID[recs[i].ID] = &recs[i]
	}

	resp := &ReconcileResponse{}
	for _, row := range rows {
		if row.ID == "" {
			resp.Skipped++
			continue
		}
		existing, ok := byID[row.ID]
		if !ok {
			resp.Errors = append(resp.Errors, RowError{
				ID: row.ID, Code: CodeNotFound, Message: "loan " + row.ID + " not found",
			})
			continue
		}

		rec, err := applyEdit(existing, row)
		if err != nil {
			resp.Errors = append(resp.Errors, rowError(row.ID, err))
			continue
		}
		if rec.Equal(existing) {
			resp.Unchanged++
			continue
		}
		if err := s.store.Update(ctx, row.ID, rec); err != nil {
			resp.Errors = append(resp.Errors, rowError(row.ID, err))
			continue
		}
		resp.Updated++
	}
	return resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*LoanRecord, error) {
	recs, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == id {
			return &recs[i], nil
		}
	}
	return nil, NewNotFoundError("loan " + id + " not found")
}

// applyEdit builds the replacement record: mutable fields from the edit,
// id and registration from the stored record.
func applyEdit(existing *LoanRecord, edit LoanEdit) (*LoanRecord, error) {
	licenseExpiry, err := parseDate(edit.LicenseExpiry)
	if err != nil {
		return nil, NewInvalidArgumentError("license_expiry: " + err.Error())
	}
	expectedReturn, err := parseDate(edit.ExpectedReturn)
	if err != nil {
		return nil, NewInvalidArgumentError("expected_return: " + err.Error())
	}
	actualReturn, err := parseDate(edit.ActualReturn)
	if err != nil {
		return nil, NewInvalidArgumentError("actual_return: " + err.Error())
	}

	return &LoanRecord{
		ID:              existing.ID,
		RequesterName:   edit.RequesterName,
		RequesterEmail:  edit.RequesterEmail,
		IPN:             edit.IPN,
		Department:      edit.Department,
		Phone:           edit.Phone,
		LicenseNumber:   edit.LicenseNumber,
		LicenseExpiry:   licenseExpiry,
		SupervisorName:  edit.SupervisorName,
		SupervisorEmail: edit.SupervisorEmail,
		VehicleSV:       edit.VehicleSV,
		Project:         edit.Project,
		NeedsCard:       edit.NeedsCard,
		Overnight:       edit.Overnight,
		Reason:          edit.Reason,
		ExpectedReturn:  expectedReturn,
		ActualReturn:    actualReturn,
		RegisteredAt:    existing.RegisteredAt,
		Plate:           edit.Plate,
		DeclarationAck:  edit.DeclarationAck,
	}, nil
}

func missingFields(req CreateLoanRequest) []string {
	required := []struct {
		name  string
		value string
	}{
		{FieldRequesterName, req.RequesterName},
		{FieldRequesterEmail, req.RequesterEmail},
		{FieldIPN, req.IPN},
		{FieldDepartment, req.Department},
		{FieldPhone, req.Phone},
		{FieldLicenseNumber, req.LicenseNumber},
		{FieldLicenseExpiry, req.LicenseExpiry},
		{FieldSupervisorName, req.SupervisorName},
		{FieldSupervisorEmail, req.SupervisorEmail},
		{FieldVehicleSV, req.VehicleSV},
		{FieldProject, req.Project},
		{FieldReason, req.Reason},
		{FieldExpectedReturn, req.ExpectedReturn},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func rowError(id string, err error) RowError {
	if de, ok := err.(*DomainError); ok {
		return RowError{ID: id, Code: de.Code, Message: de.Message}
	}
	return RowError{ID: id, Code: CodeInternal, Message: err.Error()}
}

func buildLoanResponse(rec *LoanRecord, st Status) LoanResponse {
	resp := LoanResponse{
		ID:              rec.ID,
		Status:          st,
		RequesterName:   rec.RequesterName,
		RequesterEmail:  rec.RequesterEmail,
		IPN:             rec.IPN,
		Department:      rec.Department,
		Phone:           rec.Phone,
		LicenseNumber:   rec.LicenseNumber,
		SupervisorName:  rec.SupervisorName,
		SupervisorEmail: rec.SupervisorEmail,
		VehicleSV:       rec.VehicleSV,
		Project:         rec.Project,
		NeedsCard:       rec.NeedsCard,
		Overnight:       rec.Overnight,
		Reason:          rec.Reason,
		RegisteredAt:    rec.RegisteredAt.Format(TimestampLayout),
		Plate:           rec.Plate,
		DeclarationAck:  rec.DeclarationAck,
	}
	if s := formatDate(rec.LicenseExpiry); s != "" {
		resp.LicenseExpiry = &s
	}
	if s := formatDate(rec.ExpectedReturn); s != "" {
		resp.ExpectedReturn = &s
	}
	if s := formatDate(rec.ActualReturn); s != "" {
		resp.ActualReturn = &s
	}
	return resp
}
