package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"usedauction-backend/internal/auth"
	"usedauction-backend/internal/config"
	"usedauction-backend/internal/handler"
	appmw "usedauction-backend/internal/middleware"
	"usedauction-backend/internal/repository"
	"usedauction-backend/internal/service"
	"usedauction-backend/internal/storage"
)

type Server struct {
	e *echo.Echo
}

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

func New(db *gorm.DB, cfg *config.Config, tokens *auth.TokenProvider, uploader *storage.Uploader) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{v: validator.New()}
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bidRepo := repository.NewBidRepository(db)
	chatRepo := repository.NewChatRepository(db)

	userSvc := service.NewUserService(userRepo)
	itemSvc := service.NewItemService(itemRepo)
	bidSvc := service.NewBidService(bidRepo, userRepo, itemRepo)
	chatSvc := service.NewChatService(chatRepo)

	authMw := appmw.NewAuthMiddleware(tokens, userSvc)

	authHandler := handler.NewAuthHandler(userSvc, tokens, cfg.GoogleClientID)
	userHandler := handler.NewUserHandler(userSvc, tokens, uploader)
	itemHandler := handler.NewItemHandler(itemSvc, uploader)
	bidHandler := handler.NewBidHandler(bidSvc)
	chatHandler := handler.NewChatHandler(chatSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/social-login", authHandler.SocialLogin)

	api.POST("/users", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.PATCH("/users/:id", userHandler.Patch, authMw.RequireAuth)
	api.DELETE("/users/:id", userHandler.Delete, authMw.RequireAuth)

	api.GET("/items", itemHandler.List)
	api.GET("/items/:id", itemHandler.Get)
	api.POST("/items", itemHandler.Create, authMw.RequireAuth)
	api.PUT("/items/:id", itemHandler.Update, authMw.RequireAuth)
	api.DELETE("/items/:id", itemHandler.Delete, authMw.RequireAuth)
	api.PUT("/items/:id/winningBid", itemHandler.UpdateWinner, authMw.RequireAuth)
	api.GET("/items/:id/current_price", itemHandler.CurrentPrice)
	api.GET("/items/:id/remaining_time", itemHandler.RemainingTime)

	api.POST("/bids", bidHandler.PlaceBid, authMw.RequireAuth)
	api.GET("/bids", bidHandler.List)
	api.GET("/bids/:itemId", bidHandler.ListByItem)

	api.POST("/chat/rooms", chatHandler.CreateRoom, authMw.RequireAuth)
	api.GET("/chat/rooms", chatHandler.ListRooms, authMw.RequireAuth)
	api.GET("/chat/rooms/:id/messages", chatHandler.ListMessages, authMw.RequireAuth)
	api.POST("/chat/messages", chatHandler.SendMessage, authMw.RequireAuth)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
