package httpapi

import (
	"io"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/wisteria0793/scorpion/internal/domain"
	"github.com/wisteria0793/scorpion/internal/usecase"
	pricingdto "github.com/wisteria0793/scorpion/internal/usecase/dto/pricing"
)

type PricingHandler struct {
	Resolver   *usecase.DefaultRateResolver
	Editor     usecase.BulkEditor
	Codec      usecase.CSVCodec
	Reconciler usecase.SyncReconciler
}

func NewPricingHandler(
	resolver *usecase.DefaultRateResolver,
	editor usecase.BulkEditor,
	codec usecase.CSVCodec,
	reconciler usecase.SyncReconciler) *PricingHandler {

	return &PricingHandler{
		Resolver:   resolver,
		Editor:     editor,
		Codec:      codec,
		Reconciler: reconciler,
	}
}

type resolvedDayResponse struct {
	Date               string `json:"date"`
	EffectivePrice     *int64 `json:"effective_price"`
	EffectiveMinNights int    `json:"effective_min_nights"`
	Available          bool   `json:"available"`
}

func toResolvedDayResponses(days []*domain.ResolvedDay) []resolvedDayResponse {
	out := make([]resolvedDayResponse, len(days))
	for i, day := range days {
		out[i] = resolvedDayResponse{
			Date:               day.Date.String(),
			EffectivePrice:     day.EffectivePrice,
			EffectiveMinNights: day.EffectiveMinNights,
			Available:          day.Available,
		}
	}
	return out
}

// GET /pricing/{propertyID}/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *PricingHandler) ResolveRange(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	start, err := domain.ParseDay(ctx.URLParam("start"))
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": err.Error()})
		return
	}
	end, err := domain.ParseDay(ctx.URLParam("end"))
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": err.Error()})
		return
	}

	days, err := h.Resolver.ResolveRange(ctx.Request().Context(), propertyID, start, end)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"property_id": propertyID, "days": toResolvedDayResponses(days)})
}

// GET /pricing/{propertyID}/{year}/{month} — monthly calendar view.
func (h *PricingHandler) MonthlyPricing(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")
	year, err := ctx.Params().GetInt("year")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid year"})
		return
	}
	month, err := ctx.Params().GetInt("month")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid month"})
		return
	}

	property, days, err := h.Resolver.ResolveMonth(ctx.Request().Context(), propertyID, year, time.Month(month))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"property_id": propertyID,
		"basic_settings": iris.Map{
			"base_price":        property.Settings.BasePrice,
			"base_guests":       property.Settings.BaseGuests,
			"adult_extra_price": property.Settings.AdultExtraPrice,
			"child_extra_price": property.Settings.ChildExtraPrice,
			"min_nights":        property.Settings.MinNights,
			"check_in_time":     property.Settings.CheckInTime,
			"check_out_time":    property.Settings.CheckOutTime,
		},
		"days": toResolvedDayResponses(days),
	})
}

// GET /pricing/{propertyID}/quote?date=YYYY-MM-DD&adults=2&children=1
func (h *PricingHandler) StayQuote(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	day, err := domain.ParseDay(ctx.URLParam("date"))
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": err.Error()})
		return
	}
	adults := ctx.URLParamIntDefault("adults", 0)
	children := ctx.URLParamIntDefault("children", 0)

	property, days, err := h.resolveSingleDay(ctx, propertyID, day)
	if err != nil {
		writeError(ctx, err)
		return
	}

	total, err := usecase.ComputeStayPrice(property.Settings, *days[0], adults, children)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"property_id": propertyID,
		"date":        day.String(),
		"adults":      adults,
		"children":    children,
		"price":       total,
	})
}

func (h *PricingHandler) resolveSingleDay(ctx iris.Context, propertyID string, day domain.Day) (*domain.Property, []*domain.ResolvedDay, error) {
	property, err := h.Resolver.PropertyRepo.GetProperty(ctx.Request().Context(), propertyID)
	if err != nil {
		return nil, nil, err
	}
	days, err := h.Resolver.ResolveRange(ctx.Request().Context(), propertyID, day, day)
	if err != nil {
		return nil, nil, err
	}
	return property, days, nil
}

type applyUpdatesInput struct {
	Updates []pricingdto.UpdateRow `json:"updates"`
}

// POST /pricing/{propertyID}/updates
func (h *PricingHandler) ApplyUpdates(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	var input applyUpdatesInput
	if err := ctx.ReadJSON(&input); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "malformed request body"})
		return
	}

	result, err := h.Editor.ApplyUpdates(ctx.Request().Context(), propertyID, input.Updates, domain.SourceManual)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(result)
}

// GET /pricing/{propertyID}/export?start_date=...&end_date=...
func (h *PricingHandler) ExportCSV(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	start, err := domain.ParseDay(ctx.URLParam("start_date"))
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": err.Error()})
		return
	}
	end, err := domain.ParseDay(ctx.URLParam("end_date"))
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": err.Error()})
		return
	}

	text, err := h.Codec.Serialize(ctx.Request().Context(), propertyID, start, end)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="pricing.csv"`)
	ctx.ContentType("text/csv")
	ctx.WriteString(text)
}

// POST /pricing/{propertyID}/import — CSV text body, or multipart with
// a "file" field matching the dashboard uploader.
func (h *PricingHandler) ImportCSV(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	text, err := readCSVPayload(ctx)
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": err.Error()})
		return
	}

	result, err := h.Codec.Import(ctx.Request().Context(), propertyID, text)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(result)
}

func readCSVPayload(ctx iris.Context) (string, error) {
	file, _, err := ctx.FormFile("file")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	body, err := ctx.GetBody()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

type syncInput struct {
	ExternalKey string `json:"external_key"`
	Scope       string `json:"scope"`
}

// POST /pricing/{propertyID}/sync
func (h *PricingHandler) Sync(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")

	var input syncInput
	if err := ctx.ReadJSON(&input); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "malformed request body"})
		return
	}

	scope, err := domain.ParseSyncScope(input.Scope)
	if err != nil {
		writeError(ctx, err)
		return
	}

	report, err := h.Reconciler.Run(ctx.Request().Context(), propertyID, input.ExternalKey, scope)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"run_id":  report.RunID,
		"scope":   string(report.Scope),
		"applied": report.Applied,
		"skipped": report.Skipped,
		"failed":  report.Failed,
		"errors":  report.Errors,
	})
}

// GET /pricing/{propertyID}/sync/state
func (h *PricingHandler) SyncState(ctx iris.Context) {
	propertyID := ctx.Params().Get("propertyID")
	ctx.JSON(iris.Map{
		"property_id": propertyID,
		"state":       string(h.Reconciler.State(propertyID)),
	})
}
