package server

import (
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/handler"
	appmw "github.com/Gio27709/dental-market-backend/internal/middleware"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e       *echo.Echo
	started time.Time
}

func New(db *gorm.DB, authMw *appmw.AuthMiddleware, uploader service.ObjectUploader, storageBucket, licenseBucket string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	settingsRepo := repository.NewSettingsRepository(db)
	settingsSvc := service.NewSettingsService(settingsRepo)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)

	orderRepo := repository.NewOrderRepository(db)
	orderSvc := service.NewOrderService(orderRepo, settingsSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)

	walletRepo := repository.NewWalletRepository(db)
	walletSvc := service.NewWalletService(walletRepo)
	walletHandler := handler.NewWalletHandler(walletSvc)

	productRepo := repository.NewProductRepository(db)
	productSvc := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productSvc, uploader, storageBucket)

	professionalRepo := repository.NewProfessionalRepository(db)
	professionalSvc := service.NewProfessionalService(professionalRepo, uploader, licenseBucket)
	professionalHandler := handler.NewProfessionalHandler(professionalSvc)

	favoriteRepo := repository.NewFavoriteRepository(db)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, productRepo)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)

	srv := &Server{e: e, started: time.Now()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"uptime":      time.Since(srv.started).String(),
			"environment": os.Getenv("APP_ENV"),
		})
	})

	api := e.Group("/api")

	api.GET("/products", productHandler.List)

	auth := api.Group("", authMw.RequireAuth)

	auth.POST("/orders", orderHandler.Create, appmw.RequireRole(appmw.RoleBuyer, appmw.RoleProfessional))
	auth.GET("/orders", orderHandler.List)
	auth.PUT("/orders/:item_id/ship", orderHandler.ShipItem, appmw.RequireRole(appmw.RoleStore, appmw.RoleOwner))

	auth.GET("/store/wallet", walletHandler.GetBalance, appmw.RequireRole(appmw.RoleStore))
	auth.GET("/store/wallet/transactions", walletHandler.ListTransactions, appmw.RequireRole(appmw.RoleStore))
	auth.POST("/store/payout", walletHandler.RequestPayout, appmw.RequireRole(appmw.RoleStore))

	auth.POST("/products", productHandler.Create, appmw.RequireRole(appmw.RoleStore, appmw.RoleAdmin, appmw.RoleOwner))
	auth.GET("/me/products", productHandler.ListMine, appmw.RequireRole(appmw.RoleStore, appmw.RoleAdmin, appmw.RoleOwner))
	auth.DELETE("/products/:id", productHandler.Delete, appmw.RequireRole(appmw.RoleStore, appmw.RoleAdmin, appmw.RoleOwner))
	auth.POST("/products/upload-image", productHandler.UploadImage, appmw.RequireRole(appmw.RoleStore, appmw.RoleOwner))

	auth.GET("/wishlist", favoriteHandler.List)
	auth.GET("/wishlist/check/:product_id", favoriteHandler.Check)
	auth.POST("/wishlist/:product_id", favoriteHandler.Add)
	auth.DELETE("/wishlist/:product_id", favoriteHandler.Remove)

	auth.POST("/professional/license-upload", professionalHandler.UploadLicense, appmw.RequireRole(appmw.RoleProfessional))
	auth.GET("/professional/status", professionalHandler.GetStatus, appmw.RequireRole(appmw.RoleProfessional))

	admin := auth.Group("/admin")
	admin.GET("/settings", settingsHandler.List, appmw.RequireRole(appmw.RoleOwner))
	admin.PUT("/settings/bcv-rate", settingsHandler.UpdateBCVRate, appmw.RequireRole(appmw.RoleOwner))
	admin.PUT("/settings/commission", settingsHandler.UpdateCommission, appmw.RequireRole(appmw.RoleOwner))
	admin.PUT("/products/:id/moderate", productHandler.Moderate, appmw.RequireRole(appmw.RoleAdmin, appmw.RoleOwner))
	admin.GET("/professional-licenses", professionalHandler.ListPending, appmw.RequireRole(appmw.RoleAdmin, appmw.RoleOwner))
	admin.PUT("/professionals/:id/verify", professionalHandler.Verify, appmw.RequireRole(appmw.RoleAdmin, appmw.RoleOwner))

	return srv
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
