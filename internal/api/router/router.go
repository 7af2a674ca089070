package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school-admissions/backend/config"
	"school-admissions/backend/internal/api/handler"
	"school-admissions/backend/internal/api/middleware"
	"school-admissions/backend/internal/dto"
	"school-admissions/backend/pkg/jwt"
	"school-admissions/backend/pkg/redis"
)

// authRateLimit budget for the credential endpoints, per client IP
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Setup builds the gin engine. rdb may be nil when Redis is disabled.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	// keep typed nils out of the middleware interfaces
	var (
		blacklist middleware.Blacklist
		counter   middleware.WindowCounter
	)
	if rdb != nil {
		blacklist, counter = rdb, rdb
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.Local.Dir)
	}

	authed := middleware.JWTAuth(jwtMgr, blacklist, logger)
	adminOnly := middleware.AdminOnly()

	v1 := r.Group("/api/v1")
	{
		// ── public ──
		auth := v1.Group("/auth")
		{
			limited := middleware.RateLimit(counter, authRateLimit, authRateWindow)
			auth.POST("/register", limited, h.Auth.Register)
			auth.POST("/login", limited, h.Auth.Login)
			auth.POST("/refresh", limited, h.Auth.Refresh)
			auth.POST("/logout", authed, h.Auth.Logout)
			auth.GET("/me", authed, h.Auth.Me)
		}

		v1.GET("/form/fields", h.Form.Definition)

		branches := v1.Group("/branches")
		branches.Use(middleware.UUIDParams("id", "itemId"))
		{
			branches.GET("", h.Branch.ListPublic)
			branches.GET("/:id", h.Branch.GetPublic)
			branches.GET("/:id/contact", h.Branch.GetContact)
			branches.GET("/:id/about", h.About.Get)
			branches.GET("/:id/news", h.News.ListPublic)
			branches.GET("/:id/news/:itemId", h.News.GetPublic)
			branches.GET("/:id/academics", h.Academics.ListPublic)
			branches.GET("/:id/carousel", h.Carousel.ListPublic)
			branches.GET("/:id/gallery", h.Gallery.ListPublic)
			branches.GET("/:id/careers", h.Careers.ListPublic)
		}

		// ── authenticated ──
		authorized := v1.Group("")
		authorized.Use(authed)
		{
			authorized.POST("/applications", h.Application.Submit)
			authorized.GET("/applications/status", h.Application.Status)
			authorized.POST("/uploads", h.Upload.Upload)
		}

		// ── admin ──
		admin := v1.Group("/admin")
		admin.Use(authed, adminOnly)
		{
			fields := admin.Group("/form/fields")
			fields.Use(middleware.UUIDParams("id"))
			{
				fields.GET("", h.Form.List)
				fields.POST("", h.Form.Create)
				fields.PUT("/order", h.Form.Reorder)
				fields.PUT("/:id", h.Form.Update)
				fields.DELETE("/:id", h.Form.Delete)
			}

			apps := admin.Group("/applications")
			{
				apps.GET("", h.Application.List)
				apps.GET("/export", h.Export.ExportApplications)
				apps.PUT("/status", h.Application.UpdateStatus)
				apps.POST("/migrate-approved", h.Application.MigrateApproved)
				apps.DELETE("/:id", h.Application.Delete)
			}

			students := admin.Group("/students")
			{
				students.GET("", h.Student.List)
				students.GET("/:id", h.Student.Get)
				students.PUT("/:id", h.Student.Update)
			}

			br := admin.Group("/branches")
			br.Use(middleware.UUIDParams("id", "itemId"))
			{
				br.GET("", h.Branch.ListAll)
				br.POST("", h.Branch.Create)
				br.GET("/:id", h.Branch.GetAny)
				br.PUT("/:id", h.Branch.Update)
				br.DELETE("/:id", h.Branch.Delete)
				br.PUT("/:id/default", h.Branch.SetDefault)
				br.PUT("/:id/contact", h.Branch.UpsertContact)
				br.PUT("/:id/about", h.About.Replace)

				content(br, "news", h.News)
				content(br, "academics", h.Academics)
				content(br, "carousel", h.Carousel)
				content(br, "gallery", h.Gallery)
				content(br, "careers", h.Careers)
			}
		}
	}

	return r, nil
}

// contentRoutes the admin half of a ContentHandler
type contentRoutes interface {
	ListAll(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func content(g *gin.RouterGroup, name string, h contentRoutes) {
	g.GET("/:id/"+name, h.ListAll)
	g.POST("/:id/"+name, h.Create)
	g.GET("/:id/"+name+"/:itemId", h.Get)
	g.PUT("/:id/"+name+"/:itemId", h.Update)
	g.DELETE("/:id/"+name+"/:itemId", h.Delete)
}
