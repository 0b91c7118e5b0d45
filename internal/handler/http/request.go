package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/request"
	"github.com/wforce/workforce-backend-go/internal/handler/http/response"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &requestHandlerImpl{
		requestService: requestService,
	}
}

// Submit implements RequestHandler.
func (h *requestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted", result)
}

// Resolve implements RequestHandler.
func (h *requestHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	var req request.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	result, err := h.requestService.Resolve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRequests implements RequestHandler.
func (h *requestHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.MyRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements RequestHandler.
func (h *requestHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.PendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAll implements RequestHandler.
func (h *requestHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.AllRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
