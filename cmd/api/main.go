package main

import (
	"context"
	"log"

	"github.com/Gio27709/dental-market-backend/internal/config"
	"github.com/Gio27709/dental-market-backend/internal/db"
	appmw "github.com/Gio27709/dental-market-backend/internal/middleware"
	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/server"
	"github.com/Gio27709/dental-market-backend/internal/storage"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.GlobalSetting{},
		&model.Category{},
		&model.Product{},
		&model.ProductVariation{},
		&model.Order{},
		&model.OrderItem{},
		&model.StoreWallet{},
		&model.WalletTransaction{},
		&model.PayoutRequest{},
		&model.ProfessionalProfile{},
		&model.Favorite{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	ctx := context.Background()
	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to init firebase auth: %v", err)
	}

	uploader, err := storage.New(ctx, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer uploader.Close()

	srv := server.New(conn, authMw, uploader, cfg.StorageBucket, cfg.LicenseBucket)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
