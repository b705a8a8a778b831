package loans

import "time"

// LoanRecord is one "placa verde" loan request and its lifecycle.
// ID and RegisteredAt are fixed at creation; everything else is mutable
// through the records surface.
type LoanRecord struct {
	ID string

	RequesterName  string
	RequesterEmail string
	IPN            string
	Department     string
	Phone          string
	LicenseNumber  string
	LicenseExpiry  *time.Time

	SupervisorName  string
	SupervisorEmail string

	VehicleSV      string
	Project        string
	NeedsCard      bool
	Overnight      bool
	Reason         string
	ExpectedReturn *time.Time
	ActualReturn   *time.Time
	RegisteredAt   time.Time
	Plate          string
	DeclarationAck bool
}

// Status is derived on every read, never persisted.
type Status string

const (
	StatusOpen     Status = "open"
	StatusOverdue  Status = "overdue"
	StatusReturned Status = "returned"
)

// Filter conditions for the records listing. All three are AND-combined;
// empty values match everything.
type Filter struct {
	Name     string
	Vehicle  string
	Statuses []Status
}

// Equal reports whether two records carry the same field values.
// Date fields compare by calendar day, the registration timestamp by minute
// (its stored precision).
func (r *LoanRecord) Equal(o *LoanRecord) bool {
	return r.ID == o.ID &&
		r.RequesterName == o.RequesterName &&
		r.RequesterEmail == o.RequesterEmail &&
		r.IPN == o.IPN &&
		r.Department == o.Department &&
		r.Phone == o.Phone &&
		r.LicenseNumber == o.LicenseNumber &&
		sameDate(r.LicenseExpiry, o.LicenseExpiry) &&
		r.SupervisorName == o.SupervisorName &&
		r.SupervisorEmail == o.SupervisorEmail &&
		r.VehicleSV == o.VehicleSV &&
		r.Project == o.Project &&
		r.NeedsCard == o.NeedsCard &&
		r.Overnight == o.Overnight &&
		r.Reason == o.Reason &&
		sameDate(r.ExpectedReturn, o.ExpectedReturn) &&
		sameDate(r.ActualReturn, o.ActualReturn) &&
		r.RegisteredAt.Format(TimestampLayout) == o.RegisteredAt.Format(TimestampLayout) &&
		r.Plate == o.Plate &&
		r.DeclarationAck == o.DeclarationAck
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
