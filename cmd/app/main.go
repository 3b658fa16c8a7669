package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/solody/commerce-order-api/cmd"
	httpadapter "github.com/solody/commerce-order-api/internal/adapters/in/http"
	"github.com/solody/commerce-order-api/internal/adapters/out/inmemory"
	"github.com/solody/commerce-order-api/internal/adapters/out/postgres/catalogrepo"
	"github.com/solody/commerce-order-api/internal/adapters/out/postgres/orderrepo"
	"github.com/solody/commerce-order-api/internal/adapters/out/postgres/profilerepo"
	"github.com/solody/commerce-order-api/internal/adapters/out/redislock"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	registry := loadWorkflows(configs)
	mutex := createMutexService(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB, mutex, registry)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		root.CreateCompleteStaleOrdersCommandHandler(),
		configs.AutoCompleteSchedule,
		hoursToDuration(configs.AutoCompleteAgeHours),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:            goDotEnvVariable("REDIS_ADDR"),
		CurrentStoreID:       goDotEnvVariable("CURRENT_STORE_ID"),
		WorkflowsFile:        goDotEnvVariable("WORKFLOWS_FILE"),
		LockWaitSeconds:      goDotEnvInt("LOCK_WAIT_SECONDS", 30),
		AutoCompleteSchedule: goDotEnvVariable("AUTO_COMPLETE_SCHEDULE"),
		AutoCompleteAgeHours: goDotEnvInt("AUTO_COMPLETE_AGE_HOURS", 48),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&profilerepo.ProfileDTO{},
		&catalogrepo.ProductDTO{},
		&catalogrepo.VariationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func loadWorkflows(configs cmd.Config) *workflow.Registry {
	if configs.WorkflowsFile == "" {
		return workflow.NewDefaultRegistry()
	}

	registry, err := workflow.LoadRegistry(configs.WorkflowsFile)
	if err != nil {
		log.Fatalf("Failed to load workflows from %s: %v", configs.WorkflowsFile, err)
	}
	return registry
}

// createMutexService picks the lock backend. Redis spans instances; the
// in-process fallback is only safe for a single instance.
func createMutexService(configs cmd.Config) ports.MutexService {
	if configs.RedisAddr == "" {
		return inmemory.NewMutexService()
	}

	client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	return redislock.NewRedisMutexService(client)
}

func hoursToDuration(hours int) time.Duration {
	return time.Duration(hours) * time.Hour
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Logger(), middleware.Recover())

	server := httpadapter.NewServer(
		root.CreateAssembleOrderCommandHandler(),
		root.CreateApplyOrderTransitionCommandHandler(),
		root.CreateSetOrderBillingProfileCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateOrderGraphBuilder(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
