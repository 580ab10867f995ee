// routes/routes.go
package routes

import (
	"securix/config"
	"securix/controllers"
	"securix/middleware"
	"securix/repositories"
	"securix/services"
	"securix/storage"
	"securix/utils"
	"securix/websocket"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SetupRoutes wires repositories, services and controllers and returns the
// router. Everything is constructed here and injected; no package carries
// global state, so multiple router instances coexist in tests.
func SetupRoutes(cfg *config.Config, redisClient *redis.Client, hub *websocket.Hub) *gin.Engine {
	router := gin.New()

	mirror := newMirror(redisClient)
	clock := utils.NewRealClock()
	jwtService := utils.NewJWTService(cfg.JWTSecret)

	repos := initializeRepositories(mirror)
	svcs := initializeServices(repos, jwtService, mirror, hub, clock)
	hub.AttachChat(svcs.Chat)
	ctrls := initializeControllers(svcs, hub, jwtService)

	setupGlobalMiddleware(router, cfg, redisClient)
	setupPublicRoutes(router, ctrls)
	setupAuthenticatedRoutes(router, ctrls, jwtService, redisClient)

	return router
}

func newMirror(redisClient *redis.Client) storage.Mirror {
	if redisClient == nil {
		return storage.NewMemoryMirror()
	}
	return storage.NewRedisMirror(redisClient)
}

// Repositories initialization
type Repositories struct {
	User         *repositories.UserRepository
	Order        *repositories.OrderRepository
	Subscription *repositories.SubscriptionRepository
	Chat         *repositories.ChatRepository
}

func initializeRepositories(mirror storage.Mirror) *Repositories {
	return &Repositories{
		User:         repositories.NewUserRepository(),
		Order:        repositories.NewOrderRepository(mirror),
		Subscription: repositories.NewSubscriptionRepository(mirror),
		Chat:         repositories.NewChatRepository(),
	}
}

// Services initialization
type Services struct {
	Auth         *services.AuthService
	Order        *services.OrderService
	Subscription *services.SubscriptionService
	SOS          *services.SOSService
	Chat         *services.ChatService
}

func initializeServices(
	repos *Repositories,
	jwtService *utils.JWTService,
	mirror storage.Mirror,
	hub *websocket.Hub,
	clock utils.Clock,
) *Services {
	notifier := services.NewMockNotifier()
	authService := services.NewAuthService(repos.User, jwtService, notifier, mirror, clock)

	return &Services{
		Auth:         authService,
		Order:        services.NewOrderService(repos.Order, clock),
		Subscription: services.NewSubscriptionService(repos.Subscription, authService, clock),
		SOS:          services.NewSOSService(authService, notifier, hub, clock),
		Chat:         services.NewChatService(repos.Chat, hub, clock),
	}
}

// Controllers initialization
type Controllers struct {
	Auth         *controllers.AuthController
	Order        *controllers.OrderController
	Subscription *controllers.SubscriptionController
	SOS          *controllers.SOSController
	Chat         *controllers.ChatController
	WebSocket    *controllers.WebSocketController
}

func initializeControllers(svcs *Services, hub *websocket.Hub, jwtService *utils.JWTService) *Controllers {
	return &Controllers{
		Auth:         controllers.NewAuthController(svcs.Auth),
		Order:        controllers.NewOrderController(svcs.Order, svcs.Auth),
		Subscription: controllers.NewSubscriptionController(svcs.Subscription),
		SOS:          controllers.NewSOSController(svcs.SOS),
		Chat:         controllers.NewChatController(svcs.Chat),
		WebSocket:    controllers.NewWebSocketController(hub, jwtService),
	}
}

func setupGlobalMiddleware(router *gin.Engine, cfg *config.Config, redisClient *redis.Client) {
	router.Use(middleware.Logger(middleware.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Redis:    redisClient,
		Requests: cfg.RateLimitRequests,
		Window:   time.Duration(cfg.RateLimitWindow) * time.Minute,
	})
	router.Use(limiter.Middleware())
}
