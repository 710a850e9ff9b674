package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	appsvc "goblog/internal/app"
	"goblog/internal/bootstrap"
	"goblog/internal/cache"
	"goblog/internal/platform/rabbitmq"
	"goblog/internal/repository"
	"goblog/internal/transport/http/handler"
	"goblog/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	store := cookie.NewStore([]byte(app.Config.Auth.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   app.Config.Auth.SessionMaxAgeSec,
		HttpOnly: true,
		Secure:   app.Config.App.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(app.Config.Auth.SessionCookie, store))

	router.LoadHTMLGlob(app.Config.App.TemplateGlob)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	var postCache appsvc.PostListCache
	if app.Redis != nil {
		postCache = cache.NewPostListCache(
			app.Redis,
			time.Duration(app.Config.Redis.PostListTTLSeconds)*time.Second,
		)
	}

	var publisher appsvc.AsyncActivityPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	}

	authService := appsvc.NewAuthService(userRepo, app.Config.Auth.BcryptCost)
	postService := appsvc.NewPostService(postRepo, activityRepo, publisher, postCache)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", authHandler.Top)
	router.GET("/healthz", healthHandler.Check)

	router.GET("/signup", authHandler.SignupForm)
	router.POST("/signup", authHandler.Signup)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/")
	protected.Use(middleware.RequireLogin())
	{
		protected.GET("/index", postHandler.Index)
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/create", postHandler.CreateForm)
		protected.POST("/create", postHandler.Create)
		protected.GET("/:id/update", postHandler.UpdateForm)
		protected.POST("/:id/update", postHandler.Update)
		protected.GET("/:id/delete", postHandler.Delete)
		protected.GET("/activity", postHandler.Activity)
	}

	return router
}
