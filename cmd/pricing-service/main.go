package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wisteria0793/scorpion/internal/app/setup"
	"github.com/wisteria0793/scorpion/internal/delivery/httpapi"
	"github.com/wisteria0793/scorpion/internal/infrastructure/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}

	pricingMetrics := metrics.NewPricingMetrics()
	usecases := setup.InitializeUsecases(deps, pricingMetrics)

	app := iris.New()

	// CORS for the dashboard frontend
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	pricingHandler := httpapi.NewPricingHandler(usecases.Resolver, usecases.Editor, usecases.Codec, usecases.Reconciler)
	propertyHandler := httpapi.NewPropertyHandler(usecases.Properties)
	httpapi.RegisterRoutes(app, pricingHandler, propertyHandler)

	app.Get("/metrics", iris.FromStd(promhttp.Handler()))
	app.Get("/healthz", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	slog.Info("pricing service starting", "addr", deps.HTTPAddr(), "env", deps.Config.Env)
	if err := app.Listen(deps.HTTPAddr()); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
