package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"plantnet/domain"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakePlantService struct {
	plants    map[uint]domain.Plant
	nextID    uint
	lastDelta int
	adjustErr error
}

func newFakePlantService() *fakePlantService {
	return &fakePlantService{plants: make(map[uint]domain.Plant)}
}

func (f *fakePlantService) CreatePlant(_ context.Context, sellerEmail string, plant *domain.Plant) (*domain.Plant, error) {
	f.nextID++
	plant.ID = f.nextID
	plant.SellerEmail = sellerEmail
	f.plants[plant.ID] = *plant
	return plant, nil
}

func (f *fakePlantService) GetAllPlants(_ context.Context) ([]domain.Plant, error) {
	out := make([]domain.Plant, 0, len(f.plants))
	for _, p := range f.plants {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlantService) GetPlantByID(_ context.Context, id uint) (*domain.Plant, error) {
	p, ok := f.plants[id]
	if !ok {
		return nil, fmt.Errorf("plant %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (f *fakePlantService) GetPlantsBySeller(_ context.Context, email string) ([]domain.Plant, error) {
	var out []domain.Plant
	for _, p := range f.plants {
		if p.SellerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlantService) AdjustQuantity(_ context.Context, id uint, delta int) (*domain.Plant, error) {
	if f.adjustErr != nil {
		return nil, f.adjustErr
	}
	f.lastDelta = delta
	p := f.plants[id]
	p.Quantity += delta
	f.plants[id] = p
	return &p, nil
}

func (f *fakePlantService) DeletePlant(_ context.Context, _ string, id uint) error {
	delete(f.plants, id)
	return nil
}

func doRequest(h echo.HandlerFunc, method, target, body, email string, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set("email", email)
	}
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	_ = h(c)
	return rec
}

func TestCreatePlantHandler(t *testing.T) {
	svc := newFakePlantService()
	h := NewPlantHandler(svc)

	body := `{"name":"Monstera","category":"Indoor","price":12.5,"quantity":10}`
	rec := doRequest(h.CreatePlant, http.MethodPost, "/plants", body, "seller@plantnet.io", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.plants, 1)
	require.Equal(t, "seller@plantnet.io", svc.plants[1].SellerEmail)
}

func TestCreatePlantHandlerRejectsMissingFields(t *testing.T) {
	svc := newFakePlantService()
	h := NewPlantHandler(svc)

	rec := doRequest(h.CreatePlant, http.MethodPost, "/plants", `{"category":"Indoor"}`, "seller@plantnet.io", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, svc.plants)
}

// The wire shape is an unsigned amount plus a direction flag; decrease is the
// default and increase flips the sign.
func TestAdjustQuantityHandlerFoldsDirection(t *testing.T) {
	svc := newFakePlantService()
	svc.plants[1] = domain.Plant{ID: 1, Name: "Fern", Quantity: 10}
	h := NewPlantHandler(svc)

	rec := doRequest(h.AdjustQuantity, http.MethodPatch, "/plants/1", `{"quantityToUpdate":3,"status":"decrease"}`, "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, -3, svc.lastDelta)

	rec = doRequest(h.AdjustQuantity, http.MethodPatch, "/plants/1", `{"quantityToUpdate":3}`, "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, -3, svc.lastDelta)

	rec = doRequest(h.AdjustQuantity, http.MethodPatch, "/plants/1", `{"quantityToUpdate":5,"status":"increase"}`, "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, svc.lastDelta)
}

func TestAdjustQuantityHandlerConflictOnInsufficientStock(t *testing.T) {
	svc := newFakePlantService()
	svc.adjustErr = fmt.Errorf("insufficient stock: %w", domain.ErrConflict)
	h := NewPlantHandler(svc)

	rec := doRequest(h.AdjustQuantity, http.MethodPatch, "/plants/1", `{"quantityToUpdate":3}`, "", map[string]string{"id": "1"})

	require.Equal(t, http.StatusConflict, rec.Code)

	var body ResponseError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Message, "insufficient stock")
}

func TestGetPlantByIDHandlerNotFound(t *testing.T) {
	h := NewPlantHandler(newFakePlantService())

	rec := doRequest(h.GetPlantByID, http.MethodGet, "/plants/9", "", "", map[string]string{"id": "9"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(h.GetPlantByID, http.MethodGet, "/plants/abc", "", "", map[string]string{"id": "abc"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
