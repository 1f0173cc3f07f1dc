package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/bher20/pricelookup/internal/prices"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	OK       bool `json:"ok"`
	Imported int  `json:"imported"`
}

// handleGrades serves GET /api/grades?q=fragment.
func handleGrades(svc *prices.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		grades, err := svc.SuggestGrades(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeFailure(w, log, err)
			return
		}
		writeJSON(w, log, http.StatusOK, grades)
	}
}

// handlePrices serves GET /api/prices?grade=exact.
func handlePrices(svc *prices.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rows, err := svc.PricesForGrade(r.Context(), r.URL.Query().Get("grade"))
		if err != nil {
			writeFailure(w, log, err)
			return
		}
		writeJSON(w, log, http.StatusOK, rows)
	}
}

// handleUpload serves POST /api/upload with the spreadsheet in the "file"
// multipart field.
func handleUpload(svc *prices.Service, maxBytes int64, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large (limit %d MB)", maxBytes>>20))
				return
			}
			writeFailure(w, log, &prices.Error{Kind: prices.InvalidInput, Msg: "No file uploaded", Err: err})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeFailure(w, log, &prices.Error{Kind: prices.InvalidInput, Msg: "Failed to read upload", Err: err})
			return
		}

		res, err := svc.Import(r.Context(), prices.Upload{Filename: header.Filename, Data: data})
		if err != nil {
			writeFailure(w, log, err)
			return
		}
		writeJSON(w, log, http.StatusOK, UploadResponse{OK: true, Imported: res.Imported})
	}
}

func statusFor(kind prices.Kind) int {
	switch kind {
	case prices.InvalidInput, prices.NoValidRows, prices.MissingParameter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure maps a Service error onto a JSON error response. Client
// errors carry only the message; server errors add the cause as details.
func writeFailure(w http.ResponseWriter, log *zap.Logger, err error) {
	var perr *prices.Error
	if !errors.As(err, &perr) {
		log.Error("unclassified api error", zap.Error(err))
		writeJSON(w, log, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Details: err.Error()})
		return
	}

	status := statusFor(perr.Kind)
	body := ErrorResponse{Error: perr.Msg}
	if status >= http.StatusInternalServerError {
		log.Error("api request failed", zap.String("kind", string(perr.Kind)), zap.Error(err))
		if perr.Err != nil {
			body.Details = perr.Err.Error()
		}
	}
	writeJSON(w, log, status, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encode response failed", zap.Error(err))
	}
}
