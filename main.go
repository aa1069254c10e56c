package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gomart/internal/application/catalog"
	"gomart/internal/application/checkout"
	"gomart/internal/application/customers"
	"gomart/internal/config"
	domcustomer "gomart/internal/domain/customer"
	domorder "gomart/internal/domain/order"
	domoutbox "gomart/internal/domain/outbox"
	domproduct "gomart/internal/domain/product"
	"gomart/internal/infrastructure/audit"
	"gomart/internal/infrastructure/id"
	"gomart/internal/infrastructure/memory"
	"gomart/internal/infrastructure/observability/oteltrace"
	"gomart/internal/infrastructure/observability/prometrics"
	"gomart/internal/infrastructure/observability/telemetry"
	"gomart/internal/infrastructure/observability/tracing"
	"gomart/internal/infrastructure/observability/zaplogger"
	"gomart/internal/infrastructure/outbox"
	"gomart/internal/infrastructure/postgres"
	"gomart/internal/infrastructure/rabbitmq"
	"gomart/internal/infrastructure/rediscache"
	"gomart/internal/observability"
	httppresentation "gomart/internal/presentation/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := zaplogger.New(
		observability.F("service", cfg.App.Name),
		observability.F("env", cfg.App.Env),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.App.Name,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		logger.Error("tracing_init_failed", observability.F("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	tel := buildTelemetry(cfg.App.Name, logger)

	customerRepo, productRepo, orderRepo, closeStorage, err := buildStorage(ctx, cfg, tel)
	if err != nil {
		logger.Error("storage_init_failed", observability.F("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	bus := outbox.NewBus(tel)
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	var publisher domoutbox.Publisher = bus
	if cfg.RabbitMQ.URL != "" {
		conn, ch, err := rabbitmq.SetupConn(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Error("rabbitmq_init_failed", observability.F("error", err.Error()))
			os.Exit(1)
		}
		defer conn.Close()
		publisher = outbox.NewFanout(bus, rabbitmq.NewPublisher(ch))
	}

	auditWorker := audit.New(bus, tel)
	auditWorker.Start()

	idGen := id.NewUUIDGenerator()
	checkoutUC := checkout.NewCreateOrderUseCase(customerRepo, productRepo, orderRepo, idGen, publisher, tel)
	orderSvc := checkout.NewService(orderRepo)
	customerSvc := customers.NewService(customerRepo, idGen, tel)
	catalogSvc := catalog.NewService(productRepo, idGen, tel)

	handler := httppresentation.NewHandler(checkoutUC, orderSvc, customerSvc, catalogSvc, tel)
	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: root,
	}

	go func() {
		logger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", observability.F("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		logger.Info("http_server_stopped")
	}
}

func buildTelemetry(serviceName string, logger observability.Logger) observability.Observability {
	registry := prometrics.New("", "")

	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MExternalRequests: registry.Counter(
			string(observability.MExternalRequests),
			"Total number of calls to external peers.",
			"peer", "endpoint", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests served.",
			"method", "route", "status",
		),
		observability.MOrdersCreated: registry.Counter(
			string(observability.MOrdersCreated),
			"Total number of orders placed.",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MExternalRequestDuration: registry.Histogram(
			string(observability.MExternalRequestDuration),
			"Duration of calls to external peers in seconds.",
			prometheus.DefBuckets,
			"peer", "endpoint",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP requests in seconds.",
			prometheus.DefBuckets,
			"method", "route",
		),
	}

	return telemetry.New(oteltrace.New(serviceName), logger, counters, histograms)
}

// buildStorage picks the repository stack from config: postgres when
// DATABASE_URL is set, in-memory otherwise; the product store is wrapped
// with the redis cache when REDIS_ADDR is set.
func buildStorage(ctx context.Context, cfg *config.Config, tel observability.Observability) (
	domcustomer.Repository, domproduct.Repository, domorder.Repository, func(), error,
) {
	var (
		customerRepo domcustomer.Repository
		productRepo  domproduct.Repository
		orderRepo    domorder.Repository
	)
	closeStorage := func() {}

	if cfg.DB.URL != "" {
		db, err := sql.Open("postgres", cfg.DB.URL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, nil, err
		}
		customerRepo = postgres.NewCustomerRepository(db)
		productRepo = postgres.NewProductRepository(db)
		orderRepo = postgres.NewOrderRepository(db)
		closeStorage = func() { _ = db.Close() }
	} else {
		customerRepo = memory.NewCustomerRepository()
		productRepo = memory.NewProductRepository()
		orderRepo = memory.NewOrderRepository()
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		productRepo = rediscache.NewProductCache(productRepo, client, cfg.Redis.CacheTTL, tel)
		inner := closeStorage
		closeStorage = func() {
			_ = client.Close()
			inner()
		}
	}

	return customerRepo, productRepo, orderRepo, closeStorage, nil
}
