package loans

// CreateLoanRequest is the intake form payload. Dates arrive as dd/mm/yyyy
// strings. Both acknowledgement flags must be true or nothing is persisted.
type CreateLoanRequest struct {
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	IPN            string `json:"ipn"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"license_number"`
	LicenseExpiry  string `json:"license_expiry"`

	SupervisorName  string `json:"supervisor_name"`
	SupervisorEmail string `json:"supervisor_email"`

	VehicleSV      string `json:"vehicle_sv"`
	Project        string `json:"project"`
	NeedsCard      bool   `json:"needs_card"`
	Overnight      bool   `json:"overnight"`
	Reason         string `json:"reason"`
	ExpectedReturn string `json:"expected_return"`
	Plate          string `json:"plate,omitempty"`

	RulesAccepted bool `json:"rules_accepted"`
	InfoConfirmed bool `json:"info_confirmed"`
}

// LoanEdit is one edited grid row. Used both for single updates and for the
// bulk reconcile of an edited snapshot. Status, id and registration are not
// editable; incoming values for the latter two are ignored.
type LoanEdit struct {
	ID string `json:"id"`

	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	IPN            string `json:"ipn"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"license_number"`
	LicenseExpiry  string `json:"license_expiry"`

	SupervisorName  string `json:"supervisor_name"`
	SupervisorEmail string `json:"supervisor_email"`

	VehicleSV      string `json:"vehicle_sv"`
	Project        string `json:"project"`
	NeedsCard      bool   `json:"needs_card"`
	Overnight      bool   `json:"overnight"`
	Reason         string `json:"reason"`
	ExpectedReturn string `json:"expected_return"`
	ActualReturn   string `json:"actual_return"`
	Plate          string `json:"plate"`
	DeclarationAck bool   `json:"declaration_ack"`
}

// LoanResponse is one annotated record. Dates are dd/mm/yyyy strings,
// registration carries hh:mm.
type LoanResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	RequesterName  string  `json:"requester_name"`
	RequesterEmail string  `json:"requester_email"`
	IPN            string  `json:"ipn"`
	Department     string  `json:"department"`
	Phone          string  `json:"phone"`
	LicenseNumber  string  `json:"license_number"`
	LicenseExpiry  *string `json:"license_expiry,omitempty"`

	SupervisorName  string `json:"supervisor_name"`
	SupervisorEmail string `json:"supervisor_email"`

	VehicleSV      string  `json:"vehicle_sv"`
	Project        string  `json:"project"`
	NeedsCard      bool    `json:"needs_card"`
	Overnight      bool    `json:"overnight"`
	Reason         string  `json:"reason"`
	ExpectedReturn *string `json:"expected_return,omitempty"`
	ActualReturn   *string `json:"actual_return,omitempty"`
	RegisteredAt   string  `json:"registered_at"`
	Plate          string  `json:"plate,omitempty"`
	DeclarationAck bool    `json:"declaration_ack"`
}

type ListLoansResponse struct {
	Columns []Column       `json:"columns"`
	Items   []LoanResponse `json:"items"`
	Total   int            `json:"total"`
}

type ReconcileRequest struct {
	Rows []LoanEdit `json:"rows"`
}

type RowError struct {
	ID      string `json:"id"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ReconcileResponse reports what happened to each edited row. Failures are
// listed, never silently dropped.
type ReconcileResponse struct {
	Updated   int        `json:"updated"`
	Unchanged int        `json:"unchanged"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors,omitempty"`
}
