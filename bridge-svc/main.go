package main

import (
	"log"
	"net/http"

	httpapi "menu-bridge/bridge-svc/internal/api/http"
	"menu-bridge/bridge-svc/internal/service"
	"menu-bridge/bridge-svc/internal/storage"
	"menu-bridge/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	var publisher service.EventPublisher
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Println("Warning: KAFKA_BROKER not set, bridge events are disabled")
	}

	bridge := service.NewBridge(
		storage.NewPostgresStore(db),
		storage.NewJWTSessions([]byte(cfg.JWTSecret)),
		storage.NewRedisMirror(rdb, cfg.MirrorPrefix),
		publisher,
	)

	handler := httpapi.NewHandler(bridge, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}, cfg.LoginPath)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	log.Printf("Bridge Service starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors.AllowAll().Handler(r)))
}
