package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"autopreco-backend/lib/configutil"
	"autopreco-backend/lib/configutil/storage"
	"autopreco-backend/lib/scrapers/standvirtual"
	"autopreco-backend/lib/serviceutil"
	"autopreco-backend/lib/telemetry"
	"autopreco-backend/services/catalog"
	"autopreco-backend/services/listings"
	listingsdb "autopreco-backend/services/listings/db"
	"autopreco-backend/services/pricecheck"
)

type Config struct {
	Database storage.Struct `json:"database"`
	// CatalogFile is the brand/model catalog, a built-in default is
	// used when the file is missing.
	CatalogFile string `json:"catalog_file"`
	Port        int    `json:"port"`
	// MaxPages bounds how many result pages a single search walks.
	MaxPages int `json:"max_pages"`
}

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8470
	}

	db, err := config.Database.OpenDB(listingsdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "autoprecod")
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("no telemetry.json5 found, telemetry is disabled")
	} else if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	} else {
		defer t.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx, time.Second*30)
	}

	scraper, err := standvirtual.NewClient(standvirtual.ClientOptions{
		MaxPages: config.MaxPages,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize standvirtual client", err)
	}

	cat := catalog.LoadOrDefault(config.CatalogFile)
	store := listings.NewService(db)
	service := pricecheck.NewService(cat, scraper, store)

	mux := http.NewServeMux()
	registerRoutes(mux, api{
		catalog:    cat,
		pricecheck: service,
		listings:   store,
	})
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
