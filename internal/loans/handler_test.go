package loans

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &memStore{}
	svc := NewService(store)
	svc.clock = fixedClock{t: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)}

	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, api, svc) // no auth middleware in handler tests
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIntakeCreatesRecord(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", validCreateRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	var res LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, StatusOpen, res.Status)
	assert.Equal(t, "/api/v1/loans/"+res.ID, w.Header().Get("Location"))
	assert.Len(t, store.recs, 1)
}

func TestIntakeRejectsIncompleteSubmission(t *testing.T) {
	r, store := newTestRouter(t)

	req := validCreateRequest()
	req.SupervisorEmail = ""
	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeInvalidArgument, body.Error.Code)
	assert.Contains(t, body.Error.Message, "supervisor_email")
	assert.Empty(t, store.recs, "rejected submission must not be persisted")
}

func TestIntakeRejectsUnacknowledgedDeclaration(t *testing.T) {
	r, store := newTestRouter(t)

	req := validCreateRequest()
	req.InfoConfirmed = false
	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.recs)
}

func TestListEndpointFilters(t *testing.T) {
	r, _ := newTestRouter(t)

	first := validCreateRequest()
	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", first)
	require.Equal(t, http.StatusCreated, w.Code)

	second := validCreateRequest()
	second.RequesterName = "Ana Pereira"
	second.SupervisorName = "Chefe Dois"
	second.VehicleSV = "SV-9"
	w = doJSON(t, r, http.MethodPost, "/api/v1/loans", second)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/loans?name=silva&status=open,overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res ListLoansResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "João da Silva", res.Items[0].RequesterName)
	assert.Equal(t, FieldStatus, res.Columns[0].Name)

	w = doJSON(t, r, http.MethodGet, "/api/v1/loans?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", validCreateRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var created LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	edit := editFromResponse(created)
	edit.ActualReturn = "10/02/2025"
	w = doJSON(t, r, http.MethodPut, "/api/v1/loans/"+created.ID, edit)
	require.Equal(t, http.StatusOK, w.Code)

	var updated LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, StatusReturned, updated.Status)
	require.Len(t, store.recs, 1)
	require.NotNil(t, store.recs[0].ActualReturn)

	w = doJSON(t, r, http.MethodPut, "/api/v1/loans/MISSING", edit)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReconcileEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/loans", validCreateRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var created LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	changed := editFromResponse(created)
	changed.Plate = "VER-0099"
	w = doJSON(t, r, http.MethodPut, "/api/v1/loans", ReconcileRequest{
		Rows: []LoanEdit{changed, {ID: "GONE"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res ReconcileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, CodeNotFound, res.Errors[0].Code)
	assert.Equal(t, "VER-0099", store.recs[0].Plate)
}

func TestRulesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/rules", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Resolução 793/94")
}
