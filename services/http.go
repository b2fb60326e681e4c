package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/SaydirasulovFirdavs/web-kutubxona/docs"
	"github.com/SaydirasulovFirdavs/web-kutubxona/services/handlers"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"
)

type HttpService struct {
	context.DefaultService

	authMw        *AuthMiddleware
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	authHandler  *handlers.AuthHandler
	statsHandler *handlers.StatsHandler
	bookHandler  *handlers.BookHandler
	userHandler  *handlers.UserHandler
	adminHandler *handlers.AdminHandler

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authMw = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.authHandler = handlers.NewAuthHandler(svc.Service(AUTH_SVC).(*AuthService))
	svc.statsHandler = handlers.NewStatsHandler(svc.Service(READING_SVC).(*ReadingService))
	svc.bookHandler = handlers.NewBookHandler(svc.Service(BOOK_SVC).(*BookService))
	svc.userHandler = handlers.NewUserHandler(svc.Service(USER_SVC).(*UserService))
	svc.adminHandler = handlers.NewAdminHandler(
		svc.Service(ADMIN_SVC).(*AdminService),
		svc.Service(BOOK_SVC).(*BookService),
	)

	docs.SwaggerInfo.BasePath = ""

	svc.app = fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Printf("HTTP server listening on :%d", svc.port)
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	api := svc.app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", svc.rateLimitSvc.Limit("register"), svc.authHandler.Register)
	auth.Post("/login", svc.rateLimitSvc.Limit("login"), svc.authHandler.Login)
	auth.Post("/refresh", svc.rateLimitSvc.Limit("refresh"), svc.authHandler.RefreshToken)
	auth.Post("/logout", svc.authMw.RequiredAuth(), svc.authHandler.Logout)

	books := api.Group("/books")
	books.Get("/", svc.bookHandler.ListBooks)
	books.Get("/categories", svc.bookHandler.ListCategories)
	books.Get("/trending", svc.bookHandler.TrendingBooks)
	books.Get("/new", svc.bookHandler.NewArrivals)
	books.Get("/recommended", svc.authMw.RequiredAuth(), svc.bookHandler.RecommendedBooks)
	books.Get("/:bookId", svc.bookHandler.GetBook)
	books.Get("/:bookId/reviews", svc.bookHandler.GetReviews)
	books.Post("/:bookId/reviews", svc.authMw.RequiredAuth(), svc.bookHandler.CreateReview)
	books.Get("/:bookId/download", svc.authMw.RequiredAuth(), svc.rateLimitSvc.Limit("download"), svc.bookHandler.DownloadBook)

	user := api.Group("/user", svc.authMw.RequiredAuth())
	user.Get("/profile", svc.userHandler.GetProfile)
	user.Put("/profile", svc.userHandler.UpdateProfile)
	user.Get("/library", svc.userHandler.GetLibrary)
	user.Post("/library/:bookId", svc.userHandler.AddToLibrary)
	user.Delete("/library/:bookId", svc.userHandler.RemoveFromLibrary)
	user.Post("/library/:bookId/finish", svc.userHandler.FinishBook)
	user.Get("/bookmarks", svc.userHandler.GetBookmarks)
	user.Post("/books/:bookId/bookmark", svc.userHandler.SaveBookmark)
	user.Get("/highlights", svc.userHandler.GetHighlights)
	user.Post("/books/:bookId/highlights", svc.userHandler.CreateHighlight)
	user.Delete("/highlights/:highlightId", svc.userHandler.DeleteHighlight)
	user.Get("/downloads", svc.userHandler.GetDownloadHistory)

	stats := api.Group("/stats", svc.authMw.RequiredAuth())
	stats.Post("/session/start/:bookId", svc.statsHandler.StartSession)
	stats.Post("/session/end", svc.statsHandler.EndSession)
	stats.Get("/my", svc.statsHandler.GetMyStats)
	stats.Get("/achievements", svc.statsHandler.GetMyAchievements)
	stats.Post("/explain", svc.rateLimitSvc.Limit("explain"), svc.statsHandler.Explain)

	admin := api.Group("/admin", svc.authMw.RequireAdmin())
	admin.Get("/users", svc.adminHandler.ListUsers)
	admin.Put("/users/:userId/block", svc.adminHandler.SetUserBlocked)
	admin.Put("/users/:userId/role", svc.adminHandler.SetUserRole)
	admin.Get("/overview", svc.adminHandler.GetOverview)
	admin.Post("/books", svc.adminHandler.CreateBook)
	admin.Put("/books/:bookId", svc.adminHandler.UpdateBook)
	admin.Delete("/books/:bookId", svc.adminHandler.DeleteBook)
	admin.Post("/books/:bookId/cover", svc.adminHandler.UploadCover)
	admin.Post("/books/:bookId/file", svc.adminHandler.UploadFile)
	admin.Post("/categories", svc.adminHandler.CreateCategory)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c)
}
