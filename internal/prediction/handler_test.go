package prediction

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/crops/predict", h.Predict)
	r.Route("/api/predictions", func(r chi.Router) {
		r.Post("/", h.Save)
		r.Get("/", h.List)
		r.Post("/select", h.Select)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/selection", h.LatestSelection)
	})
	r.Route("/api/selected-crops", func(r chi.Router) {
		r.Get("/", h.ListSelections)
		r.Put("/{id}", h.UpdateSelection)
		r.Delete("/{id}", h.DeleteSelection)
	})
	return r
}

func serve(t *testing.T, svc *MockService, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	newRouter(NewHandler(svc)).ServeHTTP(rr, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

const riceReadingBody = `{"N":90,"P":42,"K":43,"temperature":20.8,"humidity":82,"ph":6.5,"rainfall":202.9}`

func TestHandler_Predict(t *testing.T) {
	t.Run("Recommended", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Predict", mock.Anything, riceReading()).Return(&PredictResponse{RecommendedCrop: "rice"}, nil)

		rr, resp := serve(t, svc, http.MethodPost, "/api/crops/predict", riceReadingBody)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "rice", resp["recommended_crop"])
	})

	t.Run("Bad body", func(t *testing.T) {
		svc := new(MockService)
		rr, _ := serve(t, svc, http.MethodPost, "/api/crops/predict", `{"N":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("Model down", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Predict", mock.Anything, mock.Anything).Return(nil, ErrPredictorUnavailable)

		rr, resp := serve(t, svc, http.MethodPost, "/api/crops/predict", riceReadingBody)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "Prediction failed", resp["message"])
	})
}

func TestHandler_Predictions(t *testing.T) {
	body := `{"input_data":{"location":"Chitwan","soil_type":"Clay loam","soil_ph":"6.5"},` +
		`"recommended_crops":[{"crop_name":"Rice","scientific_name":"Oryza sativa","suitability":95,"risk":"Low"}]}`

	t.Run("Save", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Save", mock.Anything, riceInput()).Return(&Prediction{ID: 1, UserID: 7}, nil)

		rr, resp := serve(t, svc, http.MethodPost, "/api/predictions/", body)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, true, resp["success"])
		svc.AssertExpectations(t)
	})

	t.Run("List", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything).Return([]*Prediction{{ID: 1}, {ID: 2}}, nil)

		rr, resp := serve(t, svc, http.MethodGet, "/api/predictions/", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, resp["predictions"], 2)
	})

	t.Run("Get", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Get", mock.Anything, uint(1)).Return(&Prediction{ID: 1}, nil)

		rr, _ := serve(t, svc, http.MethodGet, "/api/predictions/1", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Update", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Update", mock.Anything, uint(1), riceInput()).Return(&Prediction{ID: 1}, nil)

		rr, _ := serve(t, svc, http.MethodPut, "/api/predictions/1", body)
		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Delete", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Delete", mock.Anything, uint(1)).Return(nil)

		rr, _ := serve(t, svc, http.MethodDelete, "/api/predictions/1", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Bad id", func(t *testing.T) {
		svc := new(MockService)
		rr, resp := serve(t, svc, http.MethodGet, "/api/predictions/abc", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid prediction id", resp["message"])
	})
}

func TestHandler_Selections(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		svc := new(MockService)
		want := SelectCropInput{PredictionID: 1, CropName: "Rice", ScientificName: "Oryza sativa"}
		svc.On("Select", mock.Anything, want).Return(&SelectedCrop{ID: 3, PredictionID: 1, CropName: "Rice"}, nil)

		rr, resp := serve(t, svc, http.MethodPost, "/api/predictions/select",
			`{"prediction_id":1,"crop_name":"Rice","scientific_name":"Oryza sativa"}`)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Rice", resp["selected"].(map[string]any)["crop_name"])
	})

	t.Run("Latest", func(t *testing.T) {
		svc := new(MockService)
		svc.On("LatestSelection", mock.Anything, uint(1)).Return(&SelectedCrop{ID: 3}, nil)

		rr, _ := serve(t, svc, http.MethodGet, "/api/predictions/1/selection", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Latest when none", func(t *testing.T) {
		svc := new(MockService)
		svc.On("LatestSelection", mock.Anything, uint(1)).Return(nil, ErrSelectionNotFound)

		rr, resp := serve(t, svc, http.MethodGet, "/api/predictions/1/selection", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "selected crop not found", resp["message"])
	})

	t.Run("List", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListSelections", mock.Anything).Return([]*SelectedCrop{{ID: 3}}, nil)

		rr, resp := serve(t, svc, http.MethodGet, "/api/selected-crops/", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, resp["selected_crops"], 1)
	})

	t.Run("Update", func(t *testing.T) {
		svc := new(MockService)
		upd := UpdateSelectionInput{CropName: "Maize", ScientificName: "Zea mays"}
		svc.On("UpdateSelection", mock.Anything, uint(3), upd).Return(&SelectedCrop{ID: 3, CropName: "Maize"}, nil)

		rr, _ := serve(t, svc, http.MethodPut, "/api/selected-crops/3", `{"crop_name":"Maize","scientific_name":"Zea mays"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		svc := new(MockService)
		svc.On("DeleteSelection", mock.Anything, uint(3)).Return(nil)

		rr, _ := serve(t, svc, http.MethodDelete, "/api/selected-crops/3", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestHandler_ErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"Anonymous", ErrUnauthenticated, http.StatusUnauthorized},
		{"Invalid", ErrInvalidInput, http.StatusBadRequest},
		{"Not found", ErrPredictionNotFound, http.StatusNotFound},
		{"Unexpected", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Get", mock.Anything, uint(1)).Return(nil, tc.err)

			rr, resp := serve(t, svc, http.MethodGet, "/api/predictions/1", "")
			assert.Equal(t, tc.want, rr.Code)
			assert.Equal(t, false, resp["success"])
		})
	}
}
