// File: glowbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowbook/config"
	"glowbook/cron"
	"glowbook/database"
	bookingRepoPkg "glowbook/database/repository/booking"
	couponRepoPkg "glowbook/database/repository/coupon"
	staffRepoPkg "glowbook/database/repository/staff"
	userRepoPkg "glowbook/database/repository/user"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	"glowbook/services/booking"
	"glowbook/services/cart"
	"glowbook/services/kvstore"
	"glowbook/services/location"
	"glowbook/services/payment"
	"glowbook/services/pricing"
	"glowbook/services/reminder"
	"glowbook/services/user"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCartCache()
	utils.InitDraftCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	couponRepo := couponRepoPkg.NewMongoCouponRepo()

	// key-value stores over the dedicated Redis databases.
	cartStore := kvstore.NewRedisStore(utils.GetCartCacheClient())
	draftStore := kvstore.NewRedisStore(utils.GetDraftCacheClient())

	// services.
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}
	engagementStore := user.NewEngagementStore(cartStore)
	deviceLocations := location.NewDeviceLocationCache(draftStore)

	cartService := cart.NewDefaultCartService(cartStore, logger)
	couponService := pricing.NewDefaultCouponService(couponRepo)
	gateway := payment.NewRazorpayGateway(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
		logger,
	)

	reminderScheduler := reminder.NewAsynqScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}, logger)

	bookingDrafts := booking.NewDraftStore(draftStore)
	bookingService := &booking.DefaultBookingService{
		Repo:     bookingRepo,
		Cart:     cartService,
		Coupons:  couponRepo,
		Drafts:   bookingDrafts,
		Gateway:  gateway,
		Notices:  booking.NewNoticeTracker(draftStore),
		Reminder: reminderScheduler,
		Logger:   logger,
	}

	userHandler := handlers.NewUserHandler(userService, deviceLocations)
	staffHandler := handlers.NewStaffHandler(staffRepo, engagementStore)
	cartHandler := handlers.NewCartHandler(cartService)
	bookingHandler := handlers.NewBookingHandler(
		bookingService,
		bookingDrafts,
		cartService,
		couponService,
		gateway,
		staffRepo,
		userRepo,
		deviceLocations,
		config.AppConfig.Currency,
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// User endpoints.
		RegisterUserHandler:     userHandler.RegisterUserHandler,
		AuthenticateUserHandler: userHandler.AuthenticateUserHandler,
		GetProfileHandler:       userHandler.GetProfileHandler,
		UpdateProfileHandler:    userHandler.UpdateProfileHandler,
		SaveDeviceLocation:      userHandler.SaveDeviceLocation,

		// Staff directory endpoints.
		ListStaffHandler:      staffHandler.ListStaffHandler,
		GetStaffHandler:       staffHandler.GetStaffHandler,
		StaffSlotsHandler:     staffHandler.StaffSlotsHandler,
		ToggleBookmarkHandler: staffHandler.ToggleBookmarkHandler,
		ListBookmarksHandler:  staffHandler.ListBookmarksHandler,
		ToggleLikeHandler:     staffHandler.ToggleLikeHandler,
		ListLikesHandler:      staffHandler.ListLikesHandler,

		// Cart endpoints.
		AddCartItemHandler:     cartHandler.AddCartItemHandler,
		RemoveCartItemHandler:  cartHandler.RemoveCartItemHandler,
		SetCartQuantityHandler: cartHandler.SetCartQuantityHandler,
		GetCartHandler:         cartHandler.GetCartHandler,

		// Booking flow endpoints.
		SaveDraftHandler:         bookingHandler.SaveDraftHandler,
		GetDraftHandler:          bookingHandler.GetDraftHandler,
		VerifyCouponHandler:      bookingHandler.VerifyCouponHandler,
		PaymentOrderHandler:      bookingHandler.PaymentOrderHandler,
		CreateBookingHandler:     bookingHandler.CreateBookingHandler,
		ListBookingsHandler:      bookingHandler.ListBookingsHandler,
		GetBookingHandler:        bookingHandler.GetBookingHandler,
		CancelBookingHandler:     bookingHandler.CancelBookingHandler,
		RequestRescheduleHandler: bookingHandler.RequestRescheduleHandler,
		CancelRescheduleHandler:  bookingHandler.CancelRescheduleHandler,
		ApproveRescheduleHandler: bookingHandler.ApproveRescheduleHandler,
		RejectRescheduleHandler:  bookingHandler.RejectRescheduleHandler,
		CompleteBookingHandler:   bookingHandler.CompleteBookingHandler,
		ToggleReminderHandler:    bookingHandler.ToggleReminderHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder delivery worker.
	cron.InitReminderWorker(&cron.LogNotifier{Logger: logger})

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cart":  utils.GetCartCacheClient(),
		"draft": utils.GetDraftCacheClient(),
		"auth":  utils.GetAuthCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
