package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sluice-scada/common/database"
	"sluice-scada/common/logger"
	commonmqtt "sluice-scada/common/mqtt"
	commonredis "sluice-scada/common/redis"
	"sluice-scada/internal/config"
	httpapi "sluice-scada/internal/http"
	gatemqtt "sluice-scada/internal/mqtt"
	"sluice-scada/internal/repository"
	"sluice-scada/internal/service"
	"sluice-scada/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "sluice-scada")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := repository.MigrateUp(db); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		log.Info("Database schema up to date")
	}
	repos := repository.New(db)

	redisClient := commonredis.NewRedisClient(&cfg.Redis)
	kv := store.NewRedisKV(redisClient)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := kv.Ping(pingCtx); err != nil {
		// payload-authenticated clients keep working without sessions
		log.Warn("Redis unavailable, web sessions will fail until it recovers",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
	}
	pingCancel()

	var publisher service.CommandPublisher
	var mqttClient *commonmqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = commonmqtt.NewClient(&cfg.MQTT.MQTTConfig, log)
		if err != nil {
			log.Warn("MQTT enabled but connection failed, gate commands will not be published",
				zap.String("broker", cfg.MQTT.Broker),
				zap.Error(err),
			)
		} else {
			publisher = gatemqtt.NewGateCommandPublisher(mqttClient, cfg.MQTT.TopicPrefix, log)
			log.Info("Publishing gate commands over MQTT",
				zap.String("broker", cfg.MQTT.Broker),
				zap.String("topic_prefix", cfg.MQTT.TopicPrefix),
			)
		}
	}

	weather := service.NewOpenMeteoClient(cfg.Weather.BaseURL, cfg.Weather.Latitude, cfg.Weather.Longitude, cfg.Weather.Timeout, log)

	authService := service.NewAuthService(repos.Users, log)
	gateService := service.NewGateService(repos.Users, repos.Gates, repos.History, publisher, cfg.Audit.Mode, log)
	statusService := service.NewStatusService(repos.Gates, repos.Sensors, weather, log)

	sessions := httpapi.NewSessionStore(kv, cfg.Session, log)
	authHandler := httpapi.NewAuthHandler(authService, sessions, log)
	gateHandler := httpapi.NewGateHandler(gateService, statusService, sessions, log)

	router := httpapi.NewRouter(log)
	router.RegisterActionRoutes(httpapi.NewActionHandler(authHandler, gateHandler, log))
	router.RegisterAPIRoutes(authHandler, gateHandler)
	router.RegisterHealthRoutes(map[string]httpapi.HealthCheck{
		"postgres": db.PingContext,
		"redis":    kv.Ping,
	})

	log.Info("Gate command audit mode", zap.String("audit_mode", cfg.Audit.Mode))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	_ = commonredis.Close(redisClient)
	_ = database.Close(db)
}
