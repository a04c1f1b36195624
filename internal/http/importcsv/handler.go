package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finboard/finboard/internal/http/respond"
	txHandler "github.com/finboard/finboard/internal/http/transaction"
	"github.com/finboard/finboard/internal/importer"
	"github.com/finboard/finboard/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importCSV)
}

type importResponse struct {
	Imported     int   `json:"imported"`
	Transactions []any `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	txs, err := h.svc.Import(r.Context(), importer.Format(r.FormValue("format")), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(txs))
}

func toResponse(txs []*transaction.Transaction) importResponse {
	resp := importResponse{
		Imported:     len(txs),
		Transactions: make([]any, len(txs)),
	}

	for i, tx := range txs {
		resp.Transactions[i] = txHandler.ToResponse(tx)
	}

	return resp
}
