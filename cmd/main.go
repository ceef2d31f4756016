package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/cancel_reservation"
	createFieldHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/create_field"
	createReservationHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/create_reservation"
	createReviewHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/create_review"
	createSportHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/create_sport"
	deleteFieldHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/delete_field"
	deleteReviewHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/delete_review"
	deleteSportHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/delete_sport"
	getAvailableSlotsHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/get_available_slots"
	getFieldHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/get_field"
	getReservationHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/get_reservation"
	getUserHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/get_user"
	getUserReservationsHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/get_user_reservations"
	listFieldReviewsHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/list_field_reviews"
	listFieldsHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/list_fields"
	listSportsHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/list_sports"
	registerUserHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/register_user"
	updateReviewHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/update_review"
	updateUserHandler "github.com/ZHANGLudovic/Web-Project/internal/api/handlers/update_user"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	"github.com/ZHANGLudovic/Web-Project/internal/config"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
	reservationRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/reservation"
	reviewRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/review"
	slotRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/slot"
	sportRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/sport"
	userRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/user"
	fieldsService "github.com/ZHANGLudovic/Web-Project/internal/service/fields"
	reservationsService "github.com/ZHANGLudovic/Web-Project/internal/service/reservations"
	reviewsService "github.com/ZHANGLudovic/Web-Project/internal/service/reviews"
	sportsService "github.com/ZHANGLudovic/Web-Project/internal/service/sports"
	usersService "github.com/ZHANGLudovic/Web-Project/internal/service/users"
	cancelReservationUC "github.com/ZHANGLudovic/Web-Project/internal/usecase/cancel_reservation"
	createReservationUC "github.com/ZHANGLudovic/Web-Project/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/ZHANGLudovic/Web-Project/internal/usecase/get_available_slots"
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
	"github.com/ZHANGLudovic/Web-Project/pkg/logger"
	"github.com/ZHANGLudovic/Web-Project/pkg/metrics"
	"github.com/ZHANGLudovic/Web-Project/pkg/simpletxmanager"
	"github.com/ZHANGLudovic/Web-Project/pkg/txmanager"
)

// TxManager интерфейс транзакционного менеджера для usecases и сервисов
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SportCity reservation service...")
	log.Info("Configuration loaded from config.toml")

	// Счётчики доменных событий живут всегда, endpoint и обёртка БД — по флагу
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		executor dbmetrics.DBExecutor = db
		txMgr    TxManager            = simpletxmanager.NewTransactionManager(db)
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	reservationRepository := reservationRepo.NewRepository(executor)
	slotRepository := slotRepo.NewRepository(executor)
	fieldRepository := fieldRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)
	reviewRepository := reviewRepo.NewRepository(executor)
	sportRepository := sportRepo.NewRepository(executor)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	fieldsSvc := fieldsService.NewService(fieldRepository, log)
	usersSvc := usersService.NewService(userRepository, log)
	reviewsSvc := reviewsService.NewService(reviewRepository, fieldRepository, txMgr, log)
	sportsSvc := sportsService.NewService(sportRepository, log)

	// Инициализируем use cases
	slotMinutes := cfg.Booking.SlotDurationMinutes

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		fieldRepository,
		txMgr,
		log,
		metricsCollector,
		slotMinutes,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		txMgr,
		log,
		metricsCollector,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		fieldRepository,
		log,
		slotMinutes,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	listFields := listFieldsHandler.NewHandler(fieldsSvc, log)
	getField := getFieldHandler.NewHandler(fieldsSvc, log)
	createField := createFieldHandler.NewHandler(fieldsSvc, log)
	deleteField := deleteFieldHandler.NewHandler(fieldsSvc, log)
	registerUser := registerUserHandler.NewHandler(usersSvc, log)
	getUser := getUserHandler.NewHandler(usersSvc, log)
	updateUser := updateUserHandler.NewHandler(usersSvc, log)
	listSports := listSportsHandler.NewHandler(sportsSvc, log)
	createSport := createSportHandler.NewHandler(sportsSvc, log)
	deleteSport := deleteSportHandler.NewHandler(sportsSvc, log)
	createReview := createReviewHandler.NewHandler(reviewsSvc, log)
	updateReview := updateReviewHandler.NewHandler(reviewsSvc, log)
	deleteReview := deleteReviewHandler.NewHandler(reviewsSvc, log)
	listFieldReviews := listFieldReviewsHandler.NewHandler(reviewsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация пользователя
	api.HandleFunc("/users/register", registerUser.Handle).Methods(http.MethodPost)

	// Каталог площадок и видов спорта
	api.HandleFunc("/fields", listFields.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{id}", getField.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{id}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{id}/reviews", listFieldReviews.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sports", listSports.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userRepository, log))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", cancelReservation.Handle).Methods(http.MethodDelete)

	// --- Площадки (административные операции) ---
	protected.HandleFunc("/fields", createField.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/fields/{id}", deleteField.Handle).Methods(http.MethodDelete)

	// --- Отзывы ---
	protected.HandleFunc("/fields/{id}/reviews", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{id}", updateReview.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reviews/{id}", deleteReview.Handle).Methods(http.MethodDelete)

	// --- Пользователи ---
	protected.HandleFunc("/users/{id}", getUser.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", updateUser.Handle).Methods(http.MethodPut)

	// --- Каталог видов спорта (административные операции) ---
	protected.HandleFunc("/sports", createSport.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sports/{id}", deleteSport.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
