package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func newTestRouter(t *testing.T) (*mux.Router, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	h := NewHTTPHandler(newService(store), nil)
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateListingHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/listings", map[string]any{
		"label":       "Jeep",
		"car_type":    "suv",
		"door_type":   "four_door",
		"top_type":    "softtop",
		"drive_type":  "four_wheel_drive",
		"color_type":  "flashy_red",
		"price_cents": 4599900,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp listingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" || resp.CarType != "suv" || resp.ColorType != "flashy_red" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(resp.Description, "car type=suv") {
		t.Fatalf("expected rendered description, got %q", resp.Description)
	}
}

func TestCreateListingHTTPDefaults(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/listings", map[string]any{
		"color_type": "midnight_black",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp listingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CarType != "coupe" || resp.DoorType != "two_door" ||
		resp.TopType != "hardtop" || resp.DriveType != "two_wheel_drive" {
		t.Fatalf("defaults not applied: %+v", resp)
	}
}

func TestCreateListingHTTPMissingColor(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/listings", map[string]any{"label": "oops"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "You must select a color!" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestCreateListingHTTPBadJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/listings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetListingHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/listings", map[string]any{"color_type": "ocean_blue"})
	var created listingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rec = doJSON(t, r, http.MethodGet, "/v1/listings/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/v1/listings/missing-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListListingsHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []map[string]any{
		{"car_type": "suv", "color_type": "flashy_red"},
		{"car_type": "sedan", "color_type": "flashy_red"},
	} {
		if rec := doJSON(t, r, http.MethodPost, "/v1/listings", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed listing: %d", rec.Code)
		}
	}

	rec := doJSON(t, r, http.MethodGet, "/v1/listings?car_type=suv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp listListingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Listings) != 1 {
		t.Fatalf("unexpected list result: %+v", resp)
	}

	rec = doJSON(t, r, http.MethodGet, "/v1/listings?car_type=hovercraft", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad filter, got %d", rec.Code)
	}
}

func TestDeleteListingHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/v1/listings", map[string]any{"color_type": "gunmetal_gray"})
	var created listingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rec = doJSON(t, r, http.MethodDelete, "/v1/listings/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodDelete, "/v1/listings/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}
