package httpapi

import "github.com/kataras/iris/v12"

// RegisterRoutes wires the pricing API onto an iris application.
func RegisterRoutes(app *iris.Application, pricingHandler *PricingHandler, propertyHandler *PropertyHandler) {
	properties := app.Party("/properties")
	properties.Post("/", propertyHandler.CreateProperty)
	properties.Get("/", propertyHandler.ListProperties)
	properties.Get("/{propertyID}", propertyHandler.GetProperty)
	properties.Patch("/{propertyID}/settings", propertyHandler.UpdateBasicSettings)

	pricing := app.Party("/pricing")
	pricing.Get("/{propertyID}/range", pricingHandler.ResolveRange)
	pricing.Get("/{propertyID}/quote", pricingHandler.StayQuote)
	pricing.Get("/{propertyID}/export", pricingHandler.ExportCSV)
	pricing.Post("/{propertyID}/import", pricingHandler.ImportCSV)
	pricing.Post("/{propertyID}/updates", pricingHandler.ApplyUpdates)
	pricing.Post("/{propertyID}/sync", pricingHandler.Sync)
	pricing.Get("/{propertyID}/sync/state", pricingHandler.SyncState)
	pricing.Get("/{propertyID}/{year:int}/{month:int}", pricingHandler.MonthlyPricing)
}
