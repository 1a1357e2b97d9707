package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleSuggestDescription(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandlePlaceBid(c *gin.Context)
	HandleAcceptBid(c *gin.Context)

	HandleHealth(c *gin.Context)
	HandleRequestID(c *gin.Context)
	HandleRequestLog(c *gin.Context)
	HandleMaxBodyBytes(c *gin.Context)
}

type handlerImpl struct {
	logger       zerolog.Logger
	auth         services.AuthService
	tasks        services.TaskService
	bids         services.BidService
	suggestions  services.SuggestionService
	maxBodyBytes int64
}

type Services struct {
	Auth        services.AuthService
	Tasks       services.TaskService
	Bids        services.BidService
	Suggestions services.SuggestionService
}

func New(
	logger zerolog.Logger,
	svc Services,
	maxBodyBytes int64,
) Handler {
	return &handlerImpl{
		logger:       logger,
		auth:         svc.Auth,
		tasks:        svc.Tasks,
		bids:         svc.Bids,
		suggestions:  svc.Suggestions,
		maxBodyBytes: maxBodyBytes,
	}
}

// RegisterRoutes mounts every endpoint on the router. The request id,
// logging and body limit middlewares are expected to be installed on
// the engine already.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/health", h.HandleHealth)
	router.POST("/register", h.HandleRegister)
	router.POST("/suggest-description", h.HandleAuthMiddleware, h.HandleSuggestDescription)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleAuthMiddleware, h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.DELETE("/:id", h.HandleAuthMiddleware, h.HandleDeleteTask)
	tasksRouter.POST("/:id/bids", h.HandleAuthMiddleware, h.HandlePlaceBid)
	tasksRouter.POST("/:id/accept_bid", h.HandleAuthMiddleware, h.HandleAcceptBid)
}
