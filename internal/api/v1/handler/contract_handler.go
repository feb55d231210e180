package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ContractHandler generates service agreement documents. The endpoint
// returns text/html; the download filename carries the .html extension so
// the producer and consumer agree on the format.
type ContractHandler struct {
	contracts *service.ContractService
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewContractHandler(contracts *service.ContractService, v *validator.Validate, logger zerolog.Logger) *ContractHandler {
	return &ContractHandler{contracts: contracts, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 contract routes
func (h *ContractHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/contracts/generate", authMw(http.HandlerFunc(h.Generate)))
}

// Generate godoc
// @Summary Generate a contract document from the seven required fields
// @Tags contracts
// @Accept json
// @Produce html
// @Router /contracts/generate [post]
func (h *ContractHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ContractRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorDTO{
			Success:       false,
			Message:       "missing fields",
			MissingFields: missingFields(err),
		})
		return
	}

	doc, err := h.contracts.Generate(r.Context(), service.ContractInput{
		CompanyName:     req.CompanyName,
		CompanyID:       req.CompanyID,
		CompanyAddress:  req.CompanyAddress,
		LegalRepName:    req.LegalRepName,
		LegalRepID:      req.LegalRepID,
		LegalRepAddress: req.LegalRepAddress,
		LegalRepGender:  req.LegalRepGender,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate contract")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contrato.html"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
