package api

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"registration-form/pkg/config"
	"registration-form/pkg/middleware"
	"registration-form/pkg/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter wires middleware, templates and routes onto a new gin engine
func NewRouter(cfg *config.Config, handlers *Handlers, sessions *services.SessionService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.AllowedOrigin))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/health", handlers.HealthCheck)

	page := router.Group("/", middleware.Session(sessions, cfg.CookieSecure))
	page.GET("/", handlers.ShowForm)
	page.POST("/submit", handlers.SubmitForm)
	page.POST("/clear", handlers.ClearSubmission)

	api := router.Group("/api", middleware.Session(sessions, cfg.CookieSecure))
	api.POST("/fields/:field", handlers.ChangeField)
	api.POST("/submit", handlers.SubmitJSON)
	api.GET("/submission", handlers.GetSubmission)
	api.DELETE("/submission", handlers.DeleteSubmission)

	return router
}
