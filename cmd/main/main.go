package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/southpawriter02/docstratum"
	genaiAdapter "github.com/southpawriter02/docstratum/adapter/google-genai"
	"github.com/southpawriter02/docstratum/adapter/markdown"
	redisAdapter "github.com/southpawriter02/docstratum/adapter/redis"
	restAdapter "github.com/southpawriter02/docstratum/adapter/rest"
	"github.com/southpawriter02/docstratum/adapter/store"
	webAdapter "github.com/southpawriter02/docstratum/adapter/web"
	"github.com/southpawriter02/docstratum/pkg/logger"
)

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.addr", "localhost:9030")
	viper.SetDefault("db.path", "db.sqlite")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("genai.model", "gemini-2.5-flash")
	viper.SetDefault("log.path", "logs/docstratum.log")
	viper.SetDefault("log.production", false)

	viper.SetEnvPrefix("docstratum")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal("read config: ", err)
		}
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initConfig()

	zapLogger := logger.New(viper.GetString("log.path"), viper.GetBool("log.production"))
	defer zapLogger.Sync()

	// The client gets the API key from the environment variable `GEMINI_API_KEY`.
	genaiClient, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Fatal("genai client: ", err)
	}
	gAdapter := genaiAdapter.New(
		genaiClient,
		genaiAdapter.WithGenerativeModel(viper.GetString("genai.model")),
		genaiAdapter.WithLogger(zapLogger),
	)

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     viper.GetString("redis.addr"),
		DB:       viper.GetInt("redis.db"),
		Protocol: 2,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("redis ping: ", err)
	}
	sessionAdapter := redisAdapter.New(redisClient, redisAdapter.WithLogger(zapLogger))

	// Connect to the database and run migrations
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=rwc&cache=shared", viper.GetString("db.path")))
	if err != nil {
		log.Fatal("db open: ", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("db ping: ", err)
	}
	if err := docstratum.Migrate(db); err != nil {
		log.Fatal("db migrate: ", err)
	}

	validator, err := docstratum.NewValidator()
	if err != nil {
		log.Fatal("validator: ", err)
	}

	var (
		parser       = markdown.New(markdown.WithLogger(zapLogger))
		storeAdapter = store.New(db, store.WithLogger(zapLogger))
		ds           = docstratum.New(parser, gAdapter, validator, sessionAdapter, storeAdapter)
		mux          = http.NewServeMux()
	)

	restAdapter.New(ds, restAdapter.WithLogger(zapLogger)).Routes(mux)

	web, err := webAdapter.New(ds, webAdapter.WithLogger(zapLogger))
	if err != nil {
		log.Fatal("web adapter: ", err)
	}
	web.Routes(mux)

	address := viper.GetString("server.addr")

	httpServer := &http.Server{
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      65 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		Addr:              address,
		Handler:           mux,
	}

	log.Println("listening on", address)

	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
		log.Println("Stopped serving new connections.")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("HTTP shutdown error: %v", err)
	}
	log.Println("Graceful shutdown complete.")
}
