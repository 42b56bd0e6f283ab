package httpapi

import (
	"github.com/kataras/iris/v12"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/usecase"
)

type PropertyHandler struct {
	PropertyUsecase usecase.PropertyUsecase
}

func NewPropertyHandler(propertyUsecase usecase.PropertyUsecase) *PropertyHandler {
	return &PropertyHandler{PropertyUsecase: propertyUsecase}
}

type propertyInput struct {
	Name            string `json:"name"`
	ExternalKey     string `json:"external_key"`
	BasePrice       int64  `json:"base_price"`
	BaseGuests      int    `json:"base_guests"`
	AdultExtraPrice int64  `json:"adult_extra_price"`
	ChildExtraPrice int64  `json:"child_extra_price"`
	MinNights       int    `json:"min_nights"`
	CheckInTime     string `json:"check_in_time"`
	CheckOutTime    string `json:"check_out_time"`
}

func (in propertyInput) settings() domain.BasicSettings {
	return domain.BasicSettings{
		BasePrice:       in.BasePrice,
		BaseGuests:      in.BaseGuests,
		AdultExtraPrice: in.AdultExtraPrice,
		ChildExtraPrice: in.ChildExtraPrice,
		MinNights:       in.MinNights,
		CheckInTime:     in.CheckInTime,
		CheckOutTime:    in.CheckOutTime,
	}
}

func propertyResponse(property *domain.Property) iris.Map {
	return iris.Map{
		"id":                property.ID,
		"name":              property.Name,
		"external_key":      property.ExternalKey,
		"base_price":        property.Settings.BasePrice,
		"base_guests":       property.Settings.BaseGuests,
		"adult_extra_price": property.Settings.AdultExtraPrice,
		"child_extra_price": property.Settings.ChildExtraPrice,
		"min_nights":        property.Settings.MinNights,
		"check_in_time":     property.Settings.CheckInTime,
		"check_out_time":    property.Settings.CheckOutTime,
	}
}

// POST /properties
func (h *PropertyHandler) CreateProperty(ctx iris.Context) {
	var input propertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "malformed request body"})
		return
	}

	property := &domain.Property{
		Name:        input.Name,
		ExternalKey: input.ExternalKey,
		Settings:    input.settings(),
	}
	if err := h.PropertyUsecase.CreateProperty(ctx.Request().Context(), property); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(propertyResponse(property))
}

// GET /properties
func (h *PropertyHandler) ListProperties(ctx iris.Context) {
	properties, err := h.PropertyUsecase.ListProperties(ctx.Request().Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	out := make([]iris.Map, len(properties))
	for i, property := range properties {
		out[i] = propertyResponse(property)
	}
	ctx.JSON(out)
}

// GET /properties/{propertyID}
func (h *PropertyHandler) GetProperty(ctx iris.Context) {
	property, err := h.PropertyUsecase.GetProperty(ctx.Request().Context(), ctx.Params().Get("propertyID"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(propertyResponse(property))
}

// PATCH /properties/{propertyID}/settings
func (h *PropertyHandler) UpdateBasicSettings(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	var input propertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "malformed request body"})
		return
	}

	if err := h.PropertyUsecase.UpdateBasicSettings(ctx.Request().Context(), propertyID, input.settings()); err != nil {
		writeError(ctx, err)
		return
	}

	property, err := h.PropertyUsecase.GetProperty(ctx.Request().Context(), propertyID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(propertyResponse(property))
}
