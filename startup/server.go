package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"stayvista_service/authorization"
	"stayvista_service/handlers"
	"stayvista_service/notification"
	application "stayvista_service/service"
	"stayvista_service/startup/config"
	"stayvista_service/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Message,
	)

	return []byte(msg), nil
}

func initLogger(path string) {
	if path != "" {
		writer, err := rotatelogs.New(
			path+"_%Y%m%d",
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			Logger.Fatalf("Failed to create rotatelogs hook: %v", err)
		}
		Logger.SetOutput(writer)
	} else {
		Logger.SetOutput(os.Stdout)
	}

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) initMongoClient(ctx context.Context) *mongo.Client {
	client, err := store.GetClient(ctx, server.config.StayVistaDBHost, server.config.StayVistaDBPort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", server.config.RedisHost, server.config.RedisPort),
	})
}

func (server *Server) initEnforcer() *casbin.Enforcer {
	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal(err)
	}
	return enforcer
}

func (server *Server) Start() {
	initLogger(server.config.LogFilePath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient := server.initMongoClient(ctx)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		if err := mongoClient.Disconnect(ctx); err != nil {
			Logger.Errorf("error disconnecting mongo client: %s", err)
		}
	}(mongoClient, context.Background())

	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("stayvista_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	redisClient := server.initRedisClient()

	userStore := store.NewUserMongoDBStore(mongoClient, tracer)
	roomStore := store.NewRoomMongoDBStore(mongoClient, tracer)
	bookingStore := store.NewBookingMongoDBStore(mongoClient, tracer)
	roomCache := store.NewRoomRedisCache(redisClient, tracer)

	publisher := notification.NewRabbitMQPublisher(server.config.RabbitMQURL, Logger)
	mailer := notification.NewMailer(server.config.SMTPServer, server.config.SMTPPort, server.config.SMTPEmail, server.config.SMTPPassword, Logger)
	consumer := notification.NewConsumer(server.config.RabbitMQURL, mailer, Logger)
	go consumer.Start(ctx)

	tokenManager := authorization.NewTokenManager(server.config.SecretKey)
	enforcer := server.initEnforcer()

	userService := application.NewUserService(userStore, tracer)
	roomService := application.NewRoomService(roomStore, roomCache, Logger, tracer)
	bookingService := application.NewBookingService(bookingStore, roomStore, publisher, Logger, tracer)
	statsService := application.NewStatsService(bookingStore, roomStore, userStore, tracer)
	paymentService := application.NewPaymentService(server.config.PaymentAPIURL, server.config.PaymentSecretKey, Logger, tracer)

	authHandler := handlers.NewAuthHandler(tokenManager, server.config.Production(), tracer)
	userHandler := handlers.NewUserHandler(userService, tracer)
	roomHandler := handlers.NewRoomHandler(roomService, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, paymentService, tracer)
	statsHandler := handlers.NewStatsHandler(statsService, tracer)

	router := mux.NewRouter()
	router.Use(ExtractTraceInfoMiddleware)
	router.Use(MiddlewareContentTypeSet)

	router.HandleFunc("/", func(writer http.ResponseWriter, req *http.Request) {
		_, _ = writer.Write([]byte("Hello from StayVista Server.."))
	}).Methods("GET")

	public := router.NewRoute().Subrouter()

	authed := router.NewRoute().Subrouter()
	authed.Use(authorization.Authenticate(tokenManager, Logger))

	gated := router.NewRoute().Subrouter()
	gated.Use(authorization.Authenticate(tokenManager, Logger))
	gated.Use(authorization.Authorize(enforcer, userService, Logger))

	authHandler.Init(public)
	userHandler.Init(public, gated)
	roomHandler.Init(public, authed, gated)
	bookingHandler.Init(authed, gated)
	statsHandler.Init(gated)

	server.start(router, cancel)
}

func (server *Server) start(router *mux.Router, cancel context.CancelFunc) {
	// CORS wraps the router so preflight requests get answered even when
	// no route matches the OPTIONS method.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: server.corsMiddleware(router),
	}

	wait := time.Second * 15
	go func() {
		Logger.Infof("StayVista is running on port %s", server.config.Port)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	cancel()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), wait)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("stayvista_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func (server *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(server.config.AllowedOrigins))
	for _, origin := range server.config.AllowedOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if allowed[origin] {
			writer.Header().Set("Access-Control-Allow-Origin", origin)
			writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if req.Method == http.MethodOptions {
			writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			writer.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(writer, req)
	})
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")

		next.ServeHTTP(rw, h)
	})
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
