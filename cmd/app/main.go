package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hotelbooking/api"
	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/authz"
	"github.com/Domenick1991/hotelbooking/internal/bootstrap"
	"github.com/Domenick1991/hotelbooking/internal/cache"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/activity"
	"github.com/Domenick1991/hotelbooking/internal/service/auth"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/Domenick1991/hotelbooking/internal/service/payment"
	"github.com/Domenick1991/hotelbooking/internal/tracing"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const paymentLockTTL = 30 * time.Second

type stores struct {
	hotels   repository.HotelRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	payments repository.PaymentRepository
	events   repository.EventRepository
	uow      repository.UnitOfWork
	close    func()
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Logging, os.Stdout)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg.Tracing)
	if err != nil {
		logger.Fatalf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.WithError(err).Warn("flush traces")
		}
	}()

	st, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer st.close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logger.WithError(err).Warn("kafka unreachable, lifecycle events will be dropped")
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.HotelsCacheDuration())
	defer redisCache.Close()

	hotelOpts := []hotels.HotelServiceOption{hotels.WithLogger(logger)}
	paymentOpts := []payment.PaymentServiceOption{
		payment.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
		payment.WithLogger(logger),
		payment.WithDefaultMethod(cfg.Payment.DefaultMethod),
	}
	if err := redisCache.Ping(ctx); err != nil {
		logger.WithError(err).Warn("redis unreachable, running without hotel cache and payment locks")
	} else {
		hotelOpts = append(hotelOpts, hotels.WithCache(redisCache))
		paymentOpts = append(paymentOpts, payment.WithLocker(redisCache, paymentLockTTL))
	}

	hotelService := hotels.NewHotelService(st.hotels, hotelOpts...)
	bookingService := booking.NewBookingService(
		st.hotels,
		st.bookings,
		st.uow,
		booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
		booking.WithLogger(logger),
	)
	paymentService := payment.NewPaymentService(
		bookingService,
		st.payments,
		payment.NewSimulator(cfg.Payment.SimulatedDelay()),
		paymentOpts...,
	)
	authService, err := auth.NewAuthService(st.users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), auth.WithLogger(logger))
	if err != nil {
		logger.Fatalf("create auth service: %v", err)
	}
	activityService := activity.NewActivityService(st.events, logger)

	if cfg.Booking.SeedData {
		if err := bootstrap.Seed(ctx, authService, hotelService, logger); err != nil {
			logger.Fatalf("seed data: %v", err)
		}
	}

	policy, err := authz.NewPolicy()
	if err != nil {
		logger.Fatalf("load policy: %v", err)
	}

	router := api.NewRouter(api.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Hotels:   api.NewHotelHandler(hotelService, bookingService),
		Bookings: api.NewBookingHandler(bookingService, hotelService),
		Payments: api.NewPaymentHandler(paymentService),
		Admin:    api.NewAdminHandler(authService, hotelService, bookingService, activityService),
	}, authService, policy, logger)

	if err := bootstrap.Run(ctx, cfg, router, logger); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, logger logrus.FieldLogger) (*stores, error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		mem := repository.NewMemoryStore()
		return &stores{
			hotels:   mem.Hotels(),
			bookings: mem.Bookings(),
			users:    mem.Users(),
			payments: mem.Payments(),
			events:   mem.Events(),
			uow:      mem,
			close:    func() {},
		}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		hotels:   repository.NewHotelRepository(pool),
		bookings: repository.NewBookingRepository(pool),
		users:    repository.NewUserRepository(pool),
		payments: repository.NewPaymentRepository(pool),
		events:   repository.NewEventRepository(pool),
		uow:      repository.NewUnitOfWork(pool),
		close:    pool.Close,
	}, nil
}
