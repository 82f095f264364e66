package rest

import (
	"context"
	"net/http"
	"plantnet/domain"
	"plantnet/pkg/logger"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PlantHandler struct {
		validate     *validator.Validate
		plantService PlantService
		timeout      time.Duration
	}

	PlantService interface {
		CreatePlant(ctx context.Context, sellerEmail string, plant *domain.Plant) (*domain.Plant, error)
		GetAllPlants(ctx context.Context) ([]domain.Plant, error)
		GetPlantByID(ctx context.Context, id uint) (*domain.Plant, error)
		GetPlantsBySeller(ctx context.Context, sellerEmail string) ([]domain.Plant, error)
		AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Plant, error)
		DeletePlant(ctx context.Context, actorEmail string, id uint) error
	}

	CreatePlantRequest struct {
		Name        string  `json:"name" validate:"required"`
		Category    string  `json:"category" validate:"required"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
		Price       float64 `json:"price" validate:"required,gt=0"`
		Quantity    int     `json:"quantity" validate:"gte=0"`
	}

	// AdjustQuantityRequest mirrors the original wire shape: an unsigned
	// amount plus a direction flag, folded into a signed delta.
	AdjustQuantityRequest struct {
		QuantityToUpdate int    `json:"quantityToUpdate" validate:"required,gt=0"`
		Status           string `json:"status" validate:"omitempty,oneof=increase decrease"`
	}
)

func NewPlantHandler(plantService PlantService) *PlantHandler {
	return &PlantHandler{
		validate:     validator.New(),
		plantService: plantService,
		timeout:      10 * time.Second,
	}
}

func (h *PlantHandler) CreatePlant(c echo.Context) error {
	sellerEmail := c.Get("email").(string)

	var request CreatePlantRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate plant request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	plant, err := h.plantService.CreatePlant(ctx, sellerEmail, &domain.Plant{
		Name:        request.Name,
		Category:    request.Category,
		Description: request.Description,
		Image:       request.Image,
		Price:       request.Price,
		Quantity:    request.Quantity,
	})
	if err != nil {
		logger.Error("Failed to create plant", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(plant))
}

func (h *PlantHandler) GetAllPlants(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	plants, err := h.plantService.GetAllPlants(ctx)
	if err != nil {
		logger.Error("Failed to get all plants", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(plants))
}

func (h *PlantHandler) GetPlantByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid plant ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	plant, err := h.plantService.GetPlantByID(ctx, uint(id))
	if err != nil {
		logger.Error("Failed to get plant by id", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(plant))
}

func (h *PlantHandler) GetPlantsBySeller(c echo.Context) error {
	sellerEmail := c.Get("email").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	plants, err := h.plantService.GetPlantsBySeller(ctx, sellerEmail)
	if err != nil {
		logger.Error("Failed to get seller plants", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(plants))
}

func (h *PlantHandler) AdjustQuantity(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid plant ID"})
	}

	var request AdjustQuantityRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate quantity request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	delta := -request.QuantityToUpdate
	if request.Status == "increase" {
		delta = request.QuantityToUpdate
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	plant, err := h.plantService.AdjustQuantity(ctx, uint(id), delta)
	if err != nil {
		logger.Error("Failed to adjust plant quantity", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(plant))
}

func (h *PlantHandler) DeletePlant(c echo.Context) error {
	actorEmail := c.Get("email").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid plant ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.plantService.DeletePlant(ctx, actorEmail, uint(id)); err != nil {
		logger.Error("Failed to delete plant", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Plant deleted successfully"))
}
