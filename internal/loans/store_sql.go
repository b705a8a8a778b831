package loans

import (
	"context"
	"database/sql"

	"verde-backend/internal/platform/db"
)

// SQLStore keeps records in a single `loans` table. Works against mysql and
// sqlite; dates are stored in their dd/mm/yyyy text form so all backends
// share one schema.
type SQLStore struct {
	db *sql.DB
}

const createLoansTable = `
CREATE TABLE IF NOT EXISTS loans (
	id               VARCHAR(26) PRIMARY KEY,
	requester_name   VARCHAR(255) NOT NULL,
	requester_email  VARCHAR(255) NOT NULL,
	ipn              VARCHAR(64)  NOT NULL,
	department       VARCHAR(128) NOT NULL,
	phone            VARCHAR(64)  NOT NULL,
	license_number   VARCHAR(64)  NOT NULL,
	license_expiry   VARCHAR(10)  NOT NULL,
	supervisor_name  VARCHAR(255) NOT NULL,
	supervisor_email VARCHAR(255) NOT NULL,
	vehicle_sv       VARCHAR(64)  NOT NULL,
	project          VARCHAR(128) NOT NULL,
	needs_card       BOOLEAN      NOT NULL,
	overnight        BOOLEAN      NOT NULL,
	reason           TEXT         NOT NULL,
	expected_return  VARCHAR(10)  NOT NULL,
	actual_return    VARCHAR(10)  NOT NULL,
	registered_at    VARCHAR(16)  NOT NULL,
	plate            VARCHAR(16)  NOT NULL,
	declaration_ack  BOOLEAN      NOT NULL
)`

func NewSQLStore(conn *sql.DB) (*SQLStore, error) {
	if _, err := conn.Exec(createLoansTable); err != nil {
		return nil, NewUnavailableError("database: " + err.Error())
	}
	return &SQLStore{db: conn}, nil
}

func (s *SQLStore) Add(ctx context.Context, rec *LoanRecord) (string, error) {
	id, err := newRecordID()
	if err != nil {
		return "", NewInternalError("id generation: " + err.Error())
	}
	rec.ID = id

	const q = `
	INSERT INTO loans
	(id, requester_name, requester_email, ipn, department, phone,
	 license_number, license_expiry, supervisor_name, supervisor_email,
	 vehicle_sv, project, needs_card, overnight, reason,
	 expected_return, actual_return, registered_at, plate, declaration_ack)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, q, recordArgs(rec)...)
	if err != nil {
		return "", NewUnavailableError("database: " + err.Error())
	}
	return id, nil
}

func (s *SQLStore) LoadAll(ctx context.Context) ([]LoanRecord, error) {
	// ULIDs sort chronologically, which keeps insertion order stable here
	// even though callers must not rely on it across backends.
	const q = `
	SELECT id, requester_name, requester_email, ipn, department, phone,
	       license_number, license_expiry, supervisor_name, supervisor_email,
	       vehicle_sv, project, needs_card, overnight, reason,
	       expected_return, actual_return, registered_at, plate, declaration_ack
	FROM loans ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, NewUnavailableError("database: " + err.Error())
	}
	defer rows.Close()

	out := make([]LoanRecord, 0, 32)
	for rows.Next() {
		var (
			rec                                         LoanRecord
			licenseExpiry, expected, actual, registered string
		)
		if err := rows.Scan(
			&rec.ID, &rec.RequesterName, &rec.RequesterEmail, &rec.IPN, &rec.Department, &rec.Phone,
			&rec.LicenseNumber, &licenseExpiry, &rec.SupervisorName, &rec.SupervisorEmail,
			&rec.VehicleSV, &rec.Project, &rec.NeedsCard, &rec.Overnight, &rec.Reason,
			&expected, &actual, &registered, &rec.Plate, &rec.DeclarationAck,
		); err != nil {
			return nil, NewInternalError("database scan: " + err.Error())
		}
		if err := fillDates(&rec, licenseExpiry, expected, actual, registered); err != nil {
			return nil, NewInternalError("database row: " + err.Error())
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewUnavailableError("database: " + err.Error())
	}
	return out, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, rec *LoanRecord) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM loans WHERE id = ?`, id).Scan(&one)
		if err == sql.ErrNoRows {
			return NewNotFoundError("loan " + id + " not found")
		}
		if err != nil {
			return NewUnavailableError("database: " + err.Error())
		}

		const q = `
		UPDATE loans SET
			requester_name = ?, requester_email = ?, ipn = ?, department = ?, phone = ?,
			license_number = ?, license_expiry = ?, supervisor_name = ?, supervisor_email = ?,
			vehicle_sv = ?, project = ?, needs_card = ?, overnight = ?, reason = ?,
			expected_return = ?, actual_return = ?, registered_at = ?, plate = ?, declaration_ack = ?
		WHERE id = ?`

		args := recordArgs(rec)[1:] // drop the leading id
		args = append(args, id)
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return NewUnavailableError("database: " + err.Error())
		}
		return nil
	})
}

func (s *SQLStore) Close() error { return s.db.Close() }

func recordArgs(rec *LoanRecord) []any {
	return []any{
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
		rec.NeedsCard,
		rec.Overnight,
		rec.Reason,
		formatDate(rec.ExpectedReturn),
		formatDate(rec.ActualReturn),
		rec.RegisteredAt.Format(TimestampLayout),
		rec.Plate,
		rec.DeclarationAck,
	}
}

func fillDates(rec *LoanRecord, licenseExpiry, expected, actual, registered string) error {
	var err error
	if rec.LicenseExpiry, err = parseDate(licenseExpiry); err != nil {
		return err
	}
	if rec.ExpectedReturn, err = parseDate(expected); err != nil {
		return err
	}
	if rec.ActualReturn, err = parseDate(actual); err != nil {
		return err
	}
	if registered != "" {
		if rec.RegisteredAt, err = parseTimestamp(registered); err != nil {
			return err
		}
	}
	return nil
}
