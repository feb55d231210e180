package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContractMux(t *testing.T) *http.ServeMux {
	t.Helper()
	contracts := service.NewContractService(nil, "", zerolog.Nop())
	mux := http.NewServeMux()
	NewContractHandler(contracts, newTestValidator(), zerolog.Nop()).RegisterRoutes(mux, noMw)
	return mux
}

const fullContractRequest = `{
	"companyName": "Inversiones Delta S.A.",
	"companyId": "3-101-123456",
	"companyAddress": "San José, Costa Rica",
	"legalRepName": "María Fernández",
	"legalRepId": "1-0234-0567",
	"legalRepAddress": "Heredia, Costa Rica",
	"legalRepGender": "femenino"
}`

func TestGenerateContractReturnsDocument(t *testing.T) {
	mux := newContractMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contracts/generate", strings.NewReader(fullContractRequest))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="contrato.html"`)

	body := rec.Body.String()
	assert.Contains(t, body, "Inversiones Delta S.A.")
	assert.Contains(t, body, "María Fernández")
	assert.Contains(t, body, "femenino")
}

func TestGenerateContractNamesMissingFields(t *testing.T) {
	mux := newContractMux(t)

	// Drop exactly one field; the error must name it by its JSON tag.
	body := strings.Replace(fullContractRequest, `"legalRepGender": "femenino"`, `"legalRepGender": ""`, 1)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contracts/generate", strings.NewReader(body))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorDTO
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "missing fields", resp.Message)
	assert.Equal(t, []string{"legalRepGender"}, resp.MissingFields)
}

func TestGenerateContractAllFieldsMissing(t *testing.T) {
	mux := newContractMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contracts/generate", strings.NewReader(`{}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorDTO
	decodeJSON(t, rec, &resp)
	assert.Len(t, resp.MissingFields, 7)
}

func TestGenerateContractRejectsGet(t *testing.T) {
	mux := newContractMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contracts/generate", nil)
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
