// server/internal/api/routes/routes.go
package routes

import (
	"warranty-cert-api-server/config"
	"warranty-cert-api-server/internal/api/handlers"
	"warranty-cert-api-server/internal/s3"
	"warranty-cert-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers onto the /api/v1 surface. Navigation between
// the portal's screens (?form, ?track, ?edit=...) lives entirely in the
// client; the server only exposes these endpoints.
func SetupRouter(cfg config.Config, db *mongo.Database, s3Uploader *s3.Uploader) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	requestStore := store.NewRequestStore(db)
	requestHandler := &handlers.RequestHandler{Store: requestStore, Uploader: s3Uploader, Cfg: cfg}
	trackHandler := &handlers.TrackHandler{Store: requestStore}
	serialHandler := &handlers.SerialHandler{}

	apiV1 := router.Group("/api/v1")
	{
		requests := apiV1.Group("/requests")
		{
			requests.POST("/", requestHandler.CreateRequest)
			requests.GET("/:id", requestHandler.GetRequest)
			requests.PUT("/:id", requestHandler.UpdateRequest)
			requests.GET("/:id/status", trackHandler.TrackRequest)
		}

		serialRoutes := apiV1.Group("/serials")
		{
			serialRoutes.POST("/import", serialHandler.ImportSerials)
		}
	}

	return router
}
