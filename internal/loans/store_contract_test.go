package loans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(name string, registered time.Time) LoanRecord {
	return LoanRecord{
		RequesterName:   name,
		RequesterEmail:  "someone@example.com",
		IPN:             "P098765",
		Department:      "DE-TV",
		Phone:           "+55 41 98888-1111",
		LicenseNumber:   "98765432100",
		LicenseExpiry:   date(2027, 6, 30),
		SupervisorName:  "Supervisor Um",
		SupervisorEmail: "sup@example.com",
		VehicleSV:       "SV-7",
		Project:         "XJL",
		NeedsCard:       true,
		Overnight:       false,
		Reason:          "Validação de rodagem; trajeto até São José dos Pinhais",
		ExpectedReturn:  date(2025, 3, 15),
		RegisteredAt:    registered,
		DeclarationAck:  true,
	}
}

// runStoreContract exercises the RecordStore contract shared by all three
// backends.
func runStoreContract(t *testing.T, store RecordStore) {
	t.Helper()
	ctx := context.Background()
	registered := time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)

	// empty store: empty sequence, not an error
	recs, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	// add mints a fresh ULID
	first := sampleRecord("Maria Silva", registered)
	id1, err := store.Add(ctx, &first)
	require.NoError(t, err)
	require.Len(t, id1, 26)

	second := sampleRecord("João Pereira", registered.Add(time.Hour))
	second.NeedsCard = false
	second.Overnight = true
	id2, err := store.Add(ctx, &second)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	// round-trip: loaded records compare field-equal to what went in
	recs, err = store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	byID := map[string]LoanRecord{}
	for _, r := range recs {
		byID[r.ID] = r
	}
	got1, ok := byID[id1]
	require.True(t, ok)
	assert.True(t, got1.Equal(&first), "loaded record differs from submission: %+v vs %+v", got1, first)
	got2, ok := byID[id2]
	require.True(t, ok)
	assert.True(t, got2.Equal(&second))

	// update unmodified round-trip keeps equality
	require.NoError(t, store.Update(ctx, id1, &got1))
	recs, err = store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		if r.ID == id1 {
			assert.True(t, r.Equal(&first))
		}
	}

	// full replace: backfill plate and actual return
	edited := got1
	edited.Plate = "VER-2025"
	edited.ActualReturn = date(2025, 2, 10)
	require.NoError(t, store.Update(ctx, id1, &edited))

	recs, err = store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		switch r.ID {
		case id1:
			assert.Equal(t, "VER-2025", r.Plate)
			require.NotNil(t, r.ActualReturn)
			assert.Equal(t, "10/02/2025", formatDate(r.ActualReturn))
		case id2:
			// untouched neighbor survives the full rewrite
			assert.True(t, r.Equal(&second))
		}
	}

	// update against a vanished id
	err = store.Update(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ", &edited)
	require.Error(t, err)
	de, ok := err.(*DomainError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, de.Code)
}
