package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/DrOldGuy/builder-pattern/internal/car"
	"github.com/DrOldGuy/builder-pattern/internal/common/logger"
	"github.com/DrOldGuy/builder-pattern/internal/common/middleware"
	"github.com/gorilla/mux"
)

// HTTPHandler 车辆配置目录的 HTTP JSON API。
type HTTPHandler struct {
	svc *Service
	log logger.Logger
}

func NewHTTPHandler(svc *Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, log: log}
}

// RegisterRoutes 挂载路由。
func (h *HTTPHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/listings", h.createListing).Methods(http.MethodPost)
	r.HandleFunc("/v1/listings", h.listListings).Methods(http.MethodGet)
	r.HandleFunc("/v1/listings/{id}", h.getListing).Methods(http.MethodGet)
	r.HandleFunc("/v1/listings/{id}", h.deleteListing).Methods(http.MethodDelete)
}

type createListingRequest struct {
	Label      string `json:"label"`
	CarType    string `json:"car_type"`
	DoorType   string `json:"door_type"`
	TopType    string `json:"top_type"`
	DriveType  string `json:"drive_type"`
	ColorType  string `json:"color_type"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

type listingResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label,omitempty"`
	CarType     string    `json:"car_type"`
	DoorType    string    `json:"door_type"`
	TopType     string    `json:"top_type"`
	DriveType   string    `json:"drive_type"`
	ColorType   string    `json:"color_type"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listListingsResponse struct {
	Listings []listingResponse `json:"listings"`
	Total    int64             `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) createListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid json body"))
		return
	}

	l, err := h.svc.CreateListing(r.Context(), CreateListingInput{
		Label:      req.Label,
		CarType:    req.CarType,
		DoorType:   req.DoorType,
		TopType:    req.TopType,
		DriveType:  req.DriveType,
		ColorType:  req.ColorType,
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toResponse(l))
}

func (h *HTTPHandler) getListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(l))
}

func (h *HTTPHandler) listListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 20
	}

	listings, total, err := h.svc.ListListings(r.Context(), ListListingsFilter{
		CarType:   q.Get("car_type"),
		ColorType: q.Get("color_type"),
		Offset:    (page - 1) * size,
		Limit:     size,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := listListingsResponse{
		Listings: make([]listingResponse, 0, len(listings)),
		Total:    total,
	}
	for i := range listings {
		resp.Listings = append(resp.Listings, toResponse(&listings[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) deleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveListing(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError 把 service 层错误映射到 HTTP 状态码。
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	var be *car.BuildError
	switch {
	case errors.As(err, &be), errors.Is(err, ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrListingNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, middleware.ErrBreakerOpen):
		h.writeError(w, http.StatusServiceUnavailable, err)
	default:
		if h.log != nil {
			h.log.Errorf("catalog: %v", err)
		}
		h.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && h.log != nil {
		h.log.Warnf("failed to encode response: %v", err)
	}
}

func toResponse(l *Listing) listingResponse {
	resp := listingResponse{
		ID:         l.ID,
		Label:      l.Label,
		CarType:    l.CarType,
		DoorType:   l.DoorType,
		TopType:    l.TopType,
		DriveType:  l.DriveType,
		ColorType:  l.ColorType,
		PriceCents: l.PriceCents,
		Currency:   l.Currency,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if c, err := l.Car(); err == nil {
		resp.Description = c.String()
	}
	return resp
}
