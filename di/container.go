package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"clinic-insight-server/api"
	"clinic-insight-server/api/records"
	"clinic-insight-server/config"
	"clinic-insight-server/dao/redis"
	"clinic-insight-server/db"
	"clinic-insight-server/server"
	"clinic-insight-server/server/handlers"
	services "clinic-insight-server/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient            db.RedisClient
	RedisClinicDao         *redis.RedisClinicDAO
	ClinicRecordsAPI       records.ClinicRecordsAPI
	InsightService         *services.InsightService
	ReportRefresherService *services.ReportRefresherService
	ReportHandler          *handlers.ReportHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	ClinicInsightServer    *server.ClinicInsightHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	// Initialize Redis Client internals
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.REDIS_DB_ADDRESS,
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	// Initialize Redis client
	redisClient := db.NewClinicRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis Clinic DAO
	redisClinicDao := redis.NewRedisClinicDAO(redisClient)

	// Initialize clinic records API - using mock outside prod
	var recordsApiClient records.ClinicRecordsAPI
	if env != "prod" {
		recordsApiClient = records.NewClinicRecordsApiClientMock()
		log.Printf("Using mock clinic records api")
	} else {
		log.Printf("Using prod clinic records api")
		httpClient := api.NewHTTPClient(config.CLINIC_RECORDS_ENDPOINT_BASE_V1)

		client := records.NewClinicRecordsApiClient(httpClient)
		client.SetCredentials(config.CLINIC_RECORDS_API_KEY)
		recordsApiClient = client
	}

	// Initialize service layer with DAO dependency
	insightService := services.NewInsightService(redisClinicDao)

	// Initialize report handler
	reportHandler := handlers.NewReportHandler(insightService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(reportHandler, muxRouter)

	// Initialize clinic insight server
	clinicInsightServer := server.NewClinicInsightHttpServer(router, muxRouter)

	reportRefresherService := services.NewReportRefresherService(redisClinicDao, recordsApiClient, insightService)

	return &Container{
		RedisClient:            redisClient,
		RedisClinicDao:         redisClinicDao,
		ClinicRecordsAPI:       recordsApiClient,
		InsightService:         insightService,
		ReportRefresherService: reportRefresherService,
		ReportHandler:          reportHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		ClinicInsightServer:    clinicInsightServer,
	}
}
