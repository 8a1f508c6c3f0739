package deps

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opencivic/civic-api/config"
	"github.com/opencivic/civic-api/internal/db"
	"github.com/opencivic/civic-api/internal/http/nominatim"
	"github.com/opencivic/civic-api/util/storage"
	"github.com/opencivic/civic-api/util/websockets"
)

type Dependencies struct {
	DB        *db.DB
	Photos    storage.PhotoStore
	WebSocket *websockets.WebSocketManager
	Geocoder  *nominatim.Client
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	// Photos land on Cloudinary when configured, otherwise on the
	// local uploads dir the frontend serves.
	var photos storage.PhotoStore
	if cfg.CloudinaryCloudName != "" {
		photos = storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "civic-reports")
	} else {
		disk, err := storage.NewDisk(cfg.UploadDir, cfg.UploadPublicURL)
		if err != nil {
			log.Panicln("failed to prepare upload dir", "error", err)
		}
		photos = disk
	}

	deps := Dependencies{
		DB:        database,
		Photos:    photos,
		WebSocket: websockets.NewWebSocketManager(),
		Geocoder:  nominatim.NewClient(cfg.NominatimBaseURL),
	}
	return &deps
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}
