package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/geo"
	"github.com/bitmark-inc/neighbourmatch-api/intent"
	"github.com/bitmark-inc/neighbourmatch-api/lifecycle"
	"github.com/bitmark-inc/neighbourmatch-api/logmodule"
	"github.com/bitmark-inc/neighbourmatch-api/matcher"
	"github.com/bitmark-inc/neighbourmatch-api/notification"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/safety"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store      store.NeighbourCore
	mongoStore store.MongoStore

	// JWT public key of the identity provider
	jwtPublicKey *rsa.PublicKey

	// Core services
	extractor *intent.Extractor
	matcher   *matcher.Matcher
	lifecycle *lifecycle.Manager
	notifier  *notification.Notifier
	alerts    *safety.AlertChannel

	// Realtime sessions
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// Dependencies are the collaborators a server is built from
type Dependencies struct {
	Store        store.NeighbourCore
	MongoStore   store.MongoStore
	JWTPublicKey *rsa.PublicKey
	Extractor    *intent.Extractor
	Resolver     geo.AddressResolver
	Hub          *realtime.Hub
	// Transport publishes events. The hub is used when nil.
	Transport realtime.Transport
	Localizer *i18n.Localizer
	Scope     tally.Scope
}

// NewServer new instance of server
func NewServer(deps Dependencies) *Server {
	registerValidators()

	scope := deps.Scope
	if scope == nil {
		scope = tally.NoopScope
	}

	transport := deps.Transport
	if transport == nil {
		transport = deps.Hub
	}

	localizer := deps.Localizer
	if localizer == nil {
		localizer = notification.DefaultLocalizer()
	}

	notifier := notification.New(deps.Store, transport, localizer, scope)

	return &Server{
		store:        deps.Store,
		mongoStore:   deps.MongoStore,
		jwtPublicKey: deps.JWTPublicKey,
		extractor:    deps.Extractor,
		matcher:      matcher.New(deps.MongoStore, deps.Store, scope),
		lifecycle:    lifecycle.New(deps.Store, deps.MongoStore, notifier, scope),
		notifier:     notifier,
		alerts:       safety.NewAlertChannel(deps.MongoStore, deps.MongoStore, deps.Resolver, transport, scope),
		hub:          deps.Hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(logmodule.RequestID())
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		AllowOriginFunc:  func(string) bool { return true },
		MaxAge:           12 * time.Hour,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(s.authMiddleware())
	apiRoute.Use(s.recognizeUserMiddleware())

	userRoute := apiRoute.Group("/users")
	{
		userRoute.GET("/me", s.userDetail)
		userRoute.PATCH("/me", s.userUpdateProfile)
	}

	requestRoute := apiRoute.Group("/requests")
	{
		requestRoute.POST("/match", s.matchCandidates)
		requestRoute.POST("", s.createRequest)
		requestRoute.GET("/received", s.receivedRequests)
		requestRoute.GET("/sent", s.sentRequests)
		requestRoute.PATCH("/:requestID", s.respondRequest)
		requestRoute.POST("/:requestID/verify", s.verifySession)
		requestRoute.POST("/:requestID/complete", s.completeRequest)
	}

	notificationRoute := apiRoute.Group("/notifications")
	{
		notificationRoute.GET("", s.listNotifications)
		notificationRoute.PATCH("/:notificationID/read", s.markNotificationRead)
	}

	safetyRoute := apiRoute.Group("/safety")
	{
		safetyRoute.POST("/sos", s.triggerSOS)
	}

	safetyRoute.Use(s.adminOnly())
	{
		safetyRoute.GET("/alerts", s.listAlerts)
		safetyRoute.PATCH("/alerts/:alertID/resolve", s.resolveAlert)
	}

	apiRoute.GET("/realtime", s.realtimeSession)

	secretRoute := r.Group("/secret")
	secretRoute.Use(logmodule.Ginrus("Secret"))
	secretRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.security")))
	{
		secretRoute.GET("/alerts", s.securityDeskAlerts)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.store.Ping(); err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorUpstreamUnavailable, err)
		return
	}

	if err := s.mongoStore.Ping(); err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorUpstreamUnavailable, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
