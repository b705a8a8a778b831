package loans

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date text formats used for storage and display. Calendar dates carry no
// time of day; only the registration timestamp keeps hour:minute.
const (
	DateLayout      = "02/01/2006"
	TimestampLayout = "02/01/2006 15:04"
)

// Canonical field names. The historical spellings ("Numero cnh",
// "Número da CNH", "CNH") collapse into this single schema.
const (
	FieldID              = "id"
	FieldStatus          = "status"
	FieldExpectedReturn  = "expected_return"
	FieldActualReturn    = "actual_return"
	FieldRequesterName   = "requester_name"
	FieldRequesterEmail  = "requester_email"
	FieldDepartment      = "department"
	FieldIPN             = "ipn"
	FieldPhone           = "phone"
	FieldLicenseNumber   = "license_number"
	FieldLicenseExpiry   = "license_expiry"
	FieldSupervisorName  = "supervisor_name"
	FieldSupervisorEmail = "supervisor_email"
	FieldReason          = "reason"
	FieldNeedsCard       = "needs_card"
	FieldVehicleSV       = "vehicle_sv"
	FieldPlate           = "plate"
	FieldOvernight       = "overnight"
	FieldProject         = "project"
	FieldRegisteredAt    = "registered_at"
	FieldDeclarationAck  = "declaration_ack"
)

// Column describes one grid column for the records surface.
type Column struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Editable bool   `json:"editable"`
}

// Columns returns the fixed presentation order: status first, then the two
// status-relevant dates, then identity and loan detail fields. Status is
// derived and never editable; id and registration are immutable.
func Columns() []Column {
	return []Column{
		{Name: FieldStatus, Label: "Status", Editable: false},
		{Name: FieldExpectedReturn, Label: "Previsão Devolução", Editable: true},
		{Name: FieldActualReturn, Label: "Data Devolução Real", Editable: true},
		{Name: FieldRequesterName, Label: "Nome Solicitante", Editable: true},
		{Name: FieldRequesterEmail, Label: "Email Solicitante", Editable: true},
		{Name: FieldDepartment, Label: "Departamento", Editable: true},
		{Name: FieldIPN, Label: "IPN Solicitante", Editable: true},
		{Name: FieldPhone, Label: "Telefone Solicitante", Editable: true},
		{Name: FieldLicenseNumber, Label: "Número da CNH", Editable: true},
		{Name: FieldLicenseExpiry, Label: "Validade CNH", Editable: true},
		{Name: FieldSupervisorName, Label: "Nome Supervisor", Editable: true},
		{Name: FieldSupervisorEmail, Label: "Email Supervisor", Editable: true},
		{Name: FieldReason, Label: "Motivo", Editable: true},
		{Name: FieldNeedsCard, Label: "GoodCard", Editable: true},
		{Name: FieldVehicleSV, Label: "SV Veículo", Editable: true},
		{Name: FieldPlate, Label: "Placa", Editable: true},
		{Name: FieldOvernight, Label: "Pernoite", Editable: true},
		{Name: FieldProject, Label: "Projeto", Editable: true},
		{Name: FieldRegisteredAt, Label: "Data Registro", Editable: false},
		{Name: FieldID, Label: "ID", Editable: false},
	}
}

// storeHeader is the persisted column order shared by the file and
// spreadsheet backends. Status is intentionally absent: it is recomputed on
// every read and must never be written down.
var storeHeader = []string{
	FieldID,
	FieldRequesterName,
	FieldRequesterEmail,
	FieldIPN,
	FieldDepartment,
	FieldPhone,
	FieldLicenseNumber,
	FieldLicenseExpiry,
	FieldSupervisorName,
	FieldSupervisorEmail,
	FieldVehicleSV,
	FieldProject,
	FieldNeedsCard,
	FieldOvernight,
	FieldReason,
	FieldExpectedReturn,
	FieldActualReturn,
	FieldRegisteredAt,
	FieldPlate,
	FieldDeclarationAck,
}

func encodeRow(rec *LoanRecord) []string {
	return []string{
		rec.ID,
		rec.RequesterName,
		rec.RequesterEmail,
		rec.IPN,
		rec.Department,
		rec.Phone,
		rec.LicenseNumber,
		formatDate(rec.LicenseExpiry),
		rec.SupervisorName,
		rec.SupervisorEmail,
		rec.VehicleSV,
		rec.Project,
		strconv.FormatBool(rec.NeedsCard),
		strconv.FormatBool(rec.Overnight),
		rec.Reason,
		formatDate(rec.ExpectedReturn),
		formatDate(rec.ActualReturn),
		rec.RegisteredAt.Format(TimestampLayout),
		rec.Plate,
		strconv.FormatBool(rec.DeclarationAck),
	}
}

func decodeRow(row []string) (LoanRecord, error) {
	// spreadsheet readers drop trailing empty cells
	if len(row) < len(storeHeader) {
		padded := make([]string, len(storeHeader))
		copy(padded, row)
		row = padded
	}

	var rec LoanRecord
	var err error

	rec.ID = strings.TrimSpace(row[0])
	rec.RequesterName = row[1]
	rec.RequesterEmail = row[2]
	rec.IPN = row[3]
	rec.Department = row[4]
	rec.Phone = row[5]
	rec.LicenseNumber = row[6]
	if rec.LicenseExpiry, err = parseDate(row[7]); err != nil {
		return rec, fmt.Errorf("license_expiry: %w", err)
	}
	rec.SupervisorName = row[8]
	rec.SupervisorEmail = row[9]
	rec.VehicleSV = row[10]
	rec.Project = row[11]
	rec.NeedsCard = parseBool(row[12])
	rec.Overnight = parseBool(row[13])
	rec.Reason = row[14]
	if rec.ExpectedReturn, err = parseDate(row[15]); err != nil {
		return rec, fmt.Errorf("expected_return: %w", err)
	}
	if rec.ActualReturn, err = parseDate(row[16]); err != nil {
		return rec, fmt.Errorf("actual_return: %w", err)
	}
	if row[17] != "" {
		if rec.RegisteredAt, err = parseTimestamp(row[17]); err != nil {
			return rec, fmt.Errorf("registered_at: %w", err)
		}
	}
	rec.Plate = row[18]
	rec.DeclarationAck = parseBool(row[19])
	return rec, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// parseDate accepts dd/mm/yyyy; empty means absent.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected dd/mm/yyyy", s)
	}
	return &t, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected dd/mm/yyyy hh:mm", s)
	}
	return t, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "sim":
		return true
	}
	return false
}
