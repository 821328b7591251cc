package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/softwaremill/hotel/internal/api"
	"github.com/softwaremill/hotel/internal/api/handler"
	custommiddleware "github.com/softwaremill/hotel/internal/api/middleware"
	"github.com/softwaremill/hotel/internal/application"
	"github.com/softwaremill/hotel/internal/config"
	"github.com/softwaremill/hotel/internal/infrastructure/electric"
	"github.com/softwaremill/hotel/internal/infrastructure/postgres"
	redisinfra "github.com/softwaremill/hotel/internal/infrastructure/redis"
	"github.com/softwaremill/hotel/internal/pkg/logger"
	"github.com/softwaremill/hotel/internal/pkg/metrics"
	"github.com/softwaremill/hotel/internal/worker"
)

func main() {
	cfg := config.Load()
	defer logger.Sync()

	// データベース接続とマイグレーション
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}
	logger.Info("マイグレーション完了")

	// Redis（空室数キャッシュはヒントなので、接続できなくても起動は続行する）
	var availabilityCache *redisinfra.AvailabilityCache
	redisClient := redisinfra.NewClient(&cfg.Redis)
	if err := redisinfra.Ping(context.Background(), redisClient); err != nil {
		logger.Warn("Redisに接続できないため空室数キャッシュなしで起動", zap.Error(err))
		redisClient.Close()
		redisClient = nil
	} else {
		availabilityCache = redisinfra.NewAvailabilityCache(redisClient)
		defer redisClient.Close()
	}

	// メトリクス
	m := metrics.Init()

	// リポジトリとサービス
	txManager := postgres.NewTxManager(db)
	hotelRepo := postgres.NewHotelRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	eventStore := postgres.NewEventStore(db)

	bookingService := application.NewBookingService(txManager, hotelRepo, bookingRepo, eventStore, availabilityCache)
	hotelService := application.NewHotelService(hotelRepo, bookingRepo, availabilityCache, cfg.Worker.AvailabilityCacheTTL)

	electricClient := electric.NewClient(&cfg.Electric)

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	hotelHandler := handler.NewHotelHandler(hotelService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	syncHandler := handler.NewSyncHandler(bookingService)
	shapeHandler := handler.NewShapeHandler(electricClient)

	// ルーティング
	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/hotels", hotelHandler.Create)
	v1.GET("/hotels", hotelHandler.List)
	v1.GET("/hotels/:id", hotelHandler.GetByID)
	v1.GET("/hotels/:id/bookings", bookingHandler.ListByHotel)
	v1.POST("/hotels/:id/bookings", bookingHandler.Create)
	v1.GET("/hotels/:id/shape", shapeHandler.Shape)

	v1.GET("/bookings/:id", bookingHandler.GetByID)
	v1.POST("/bookings/:id/checkin", bookingHandler.CheckIn)
	v1.POST("/bookings/:id/checkout", bookingHandler.CheckOut)
	v1.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	v1.POST("/sync", syncHandler.Sync)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	// 空室数リフレッシュワーカー
	workerCtx, workerCancel := context.WithCancel(context.Background())
	refreshWorker := worker.NewAvailabilityRefreshWorker(hotelService, cfg.Worker.AvailabilityRefreshInterval)
	go refreshWorker.Start(workerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	workerCancel()
	refreshWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
