package routes

import (
	"net/http"
	"time"

	"monastery360/handlers"
	"monastery360/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCatalogRoutes registers the read-only site content endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/monasteries", hb.Catalog.ListMonasteries)
		api.GET("/monasteries/:id", hb.Catalog.GetMonastery)
		api.GET("/packages", hb.Catalog.ListPackages)
		api.GET("/planner/tips", hb.Catalog.ListTips)
		api.GET("/planner/options", hb.Catalog.PlannerOptions)
		api.GET("/festivals", hb.Catalog.ListFestivals)
		api.GET("/auspicious-days", hb.Catalog.ListAuspiciousDays)
		api.GET("/archives", hb.Catalog.ListArchives)
		api.GET("/archives/:id", hb.Catalog.GetArchiveItem)
	}
}

// RegisterPlannerRoutes sets up the endpoints of the visit-planner wizard.
func RegisterPlannerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sessions := r.Group("/api/planner/sessions")
	{
		sessions.POST("", hb.Planner.StartSession)
		sessions.GET("/:sessionID", hb.Planner.GetSession)
		sessions.DELETE("/:sessionID", hb.Planner.EndSession)

		session := sessions.Group("/:sessionID")
		session.POST("/monasteries/toggle", hb.Planner.ToggleMonastery)
		session.POST("/next", hb.Planner.NextStep)
		session.POST("/back", hb.Planner.PreviousStep)
		session.POST("/flights/search", hb.Planner.SearchFlights)
		session.POST("/hotels/search", hb.Planner.SearchHotels)
		session.PUT("/flights/selection", hb.Planner.SelectFlight)
		session.PUT("/hotels/selection", hb.Planner.SelectHotel)
		session.PUT("/package", hb.Planner.SelectPackage)
		session.PUT("/visitor", hb.Planner.UpdateVisitor)
		session.POST("/submit", hb.Planner.Submit)
		session.POST("/reset", hb.Planner.Reset)
	}
}

// RegisterItineraryRoutes exposes the itinerary archive.
func RegisterItineraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/itineraries/:id", hb.Itineraries.GetItinerary)
	r.GET("/api/planner/sessions/:sessionID/itineraries", hb.Itineraries.ListSessionItineraries)
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		deps := utils.GetHealthStatus()
		if !deps.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": deps})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Monastery360", "dependencies": deps})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints. Global middleware
// other than CORS is installed by the caller.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterPlannerRoutes(r, hb)
	RegisterItineraryRoutes(r, hb)
}
