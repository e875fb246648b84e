package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		ShippoBaseURL: os.Getenv("SHIPPO_BASE_URL"),
		ShippoAPIKey:  goDotEnvVariable("SHIPPO_API_KEY"),

		SenderName:    goDotEnvVariable("SENDER_NAME"),
		SenderPhone:   os.Getenv("SENDER_PHONE"),
		SenderEmail:   os.Getenv("SENDER_EMAIL"),
		SenderLine1:   goDotEnvVariable("SENDER_LINE1"),
		SenderLine2:   os.Getenv("SENDER_LINE2"),
		SenderCity:    goDotEnvVariable("SENDER_CITY"),
		SenderState:   goDotEnvVariable("SENDER_STATE"),
		SenderZip:     goDotEnvVariable("SENDER_ZIP"),
		SenderCountry: goDotEnvVariable("SENDER_COUNTRY"),

		ExcludedServices: os.Getenv("EXCLUDED_SERVICES"),

		AgentAPIKey: goDotEnvVariable("AGENT_API_KEY"),

		ClaimLeaseSeconds: intEnv("CLAIM_LEASE_SECONDS", 300),
		PrintMaxAttempts:  intEnv("PRINT_MAX_ATTEMPTS", 3),
		AutoFulfill:       os.Getenv("AUTO_FULFILL") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
