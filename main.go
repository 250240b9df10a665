package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/neighbourmatch-api/api"
	"github.com/bitmark-inc/neighbourmatch-api/external/geoinfo"
	"github.com/bitmark-inc/neighbourmatch-api/geo"
	"github.com/bitmark-inc/neighbourmatch-api/intent"
	"github.com/bitmark-inc/neighbourmatch-api/metrics"
	"github.com/bitmark-inc/neighbourmatch-api/notification"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/store"
	"github.com/bitmark-inc/neighbourmatch-api/utils"
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// a local .env file is optional
	_ = godotenv.Load()

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("neighbourmatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("orm.dialect", "postgres")
	viper.SetDefault("mongo.pool", 20)
	viper.SetDefault("mongo.database", "neighbourmatch")
	viper.SetDefault("amqp.alert_queue", "neighbourmatch.sos")
	viper.SetDefault("i18n.dir", "i18n")
	viper.SetDefault("i18n.language", "en")
	viper.SetDefault("metrics.interval", "1m")
}

func loadJWTPublicKey() (*rsa.PublicKey, error) {
	keyByte, err := ioutil.ReadFile(viper.GetString("jwt.public_key"))
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(keyByte)
}

// intentBackends returns the configured extraction backends, best first
func intentBackends(ctx context.Context, httpClient *http.Client) []intent.Backend {
	var backends []intent.Backend

	gemini, err := intent.NewGeminiBackend(ctx,
		viper.GetString("intent.gemini.api_key"),
		viper.GetString("intent.gemini.model"))
	if err != nil {
		log.WithField("prefix", "init").WithError(err).Warn("gemini backend disabled")
	} else if gemini != nil {
		backends = append(backends, gemini)
	}

	if openai := intent.NewOpenAIBackend(
		viper.GetString("intent.openai.api_key"),
		viper.GetString("intent.openai.base_url"),
		viper.GetString("intent.openai.model"),
		httpClient); openai != nil {
		backends = append(backends, openai)
	}

	return backends
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	jwtPublicKey, err := loadJWTPublicKey()
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded jwt public key")

	scope, scopeCloser := metrics.NewRootScope("neighbourmatch", viper.GetDuration("metrics.interval"))
	defer scopeCloser.Close()

	if err := utils.InitI18NBundle(notification.Messages...); err != nil {
		log.Panic(err)
	}

	ormDB, err := gorm.Open(viper.GetString("orm.dialect"), viper.GetString("orm.conn"))
	if err != nil {
		log.Panic(err)
	}
	defer ormDB.Close()

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.Connect(ctx, opts)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	defer mongoStore.Close()

	// reverse geocoding falls back to a fixed label
	resolvers := []geo.AddressResolver{}
	if key := viper.GetString("google_map_api_key"); key != "" {
		geoClient, err := geoinfo.New(key)
		if err != nil {
			log.Panic(err)
		}
		resolvers = append(resolvers, geo.NewGeocodingAddressResolver(geoClient))
	}
	resolvers = append(resolvers, geo.NewStaticAddressResolver(geo.DefaultAddress))

	hub := realtime.NewHub(scope)
	g, gctx := errgroup.WithContext(ctx)

	transports := []realtime.Transport{}
	if addr := viper.GetString("redis.addr"); addr != "" {
		relay := realtime.NewRedisRelay(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		}), hub)
		transports = append(transports, relay)
		g.Go(func() error {
			return relay.Run(gctx)
		})
		log.WithField("prefix", "init").Info("Relaying realtime events through redis")
	} else {
		transports = append(transports, hub)
	}

	if url := viper.GetString("amqp.url"); url != "" {
		mirror := realtime.NewAlertMirror(url, viper.GetString("amqp.alert_queue"), scope)
		transports = append(transports, mirror)
		g.Go(func() error {
			return mirror.Run(gctx)
		})
		log.WithField("prefix", "init").Info("Mirroring alerts to amqp")
	}

	server := api.NewServer(api.Dependencies{
		Store:        store.NewNeighbourStore(ormDB),
		MongoStore:   mongoStore,
		JWTPublicKey: jwtPublicKey,
		Extractor:    intent.NewExtractor(scope, intentBackends(ctx, httpClient)...),
		Resolver:     geo.NewMultipleAddressResolver(resolvers...),
		Hub:          hub,
		Transport:    realtime.Fanout(transports...),
		Localizer:    utils.NewLocalizer(viper.GetString("i18n.language")),
		Scope:        scope,
	})
	log.WithField("prefix", "init").Info("Initialized http server")

	g.Go(func() error {
		if err := server.Run(":" + viper.GetString("server.port")); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Server is preparing to shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err)
	}

	sentry.Flush(2 * time.Second)
}
