package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"namevault/internal/registrar/models"
	dErrors "namevault/pkg/domain-errors"
)

type recordResponse struct {
	Identifier      string    `json:"identifier"`
	Owner           string    `json:"owner"`
	TokenController string    `json:"token_controller,omitempty"`
	Resolver        string    `json:"resolver,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type claimResponse struct {
	Record    recordResponse `json:"record"`
	Deposited int64          `json:"deposited"`
}

type releaseResponse struct {
	Refunded int64 `json:"refunded"`
}

type availabilityResponse struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type costResponse struct {
	Cost int64 `json:"cost"`
}

type supplyResponse struct {
	Supply int64 `json:"supply"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toRecordResponse(record *models.NameRecord) recordResponse {
	return recordResponse{
		Identifier:      record.ID.String(),
		Owner:           record.Owner.String(),
		TokenController: record.TokenController.String(),
		Resolver:        record.Resolver.String(),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates a domain error into the JSON error envelope. The
// envelope carries the stable code and the reason text; nothing else.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	writeJSON(w, dErrors.ToHTTPStatus(code), errorResponse{
		Error:   string(code),
		Message: dErrors.MessageOf(err),
	})
}
