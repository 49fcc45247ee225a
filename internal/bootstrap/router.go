package bootstrap

import (
	"database/sql"

	firebaseauth "firebase.google.com/go/v4/auth"
	httpapi "github.com/cloudsim-dash/cloudsim-backend/internal/api/http"
	apimiddleware "github.com/cloudsim-dash/cloudsim-backend/internal/api/http/middleware"
	authmiddleware "github.com/cloudsim-dash/cloudsim-backend/internal/auth/middleware"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/demo"
	cloudsimhttp "github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/http"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/service"
	"github.com/cloudsim-dash/cloudsim-backend/internal/pricing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Redis       *redis.Client
	DB          *sql.DB
	AuthClient  *firebaseauth.Client
	SimService  *service.SimulationService
	Seeder      *demo.Seeder
	Rates       *pricing.Table
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(apimiddleware.RequestIDMiddleware())
	api.Use(authmiddleware.FirebaseAuthMiddleware(dep.AuthClient))

	cloudsimHandler := cloudsimhttp.NewHandler(dep.SimService, dep.Seeder, dep.Rates)
	cloudsimHandler.Register(api)

	return r
}
