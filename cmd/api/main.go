package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"stitchmart.org/internal/auth"
	"stitchmart.org/internal/cart"
	"stitchmart.org/internal/catalog"
	"stitchmart.org/internal/httpapi"
	"stitchmart.org/internal/mail"
	"stitchmart.org/internal/obs"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	secret := os.Getenv("STITCHMART_APP_SECRET")
	if secret == "" {
		log.Fatal("STITCHMART_APP_SECRET is required")
	}
	codec, err := auth.NewCodec(secret)
	if err != nil {
		log.Fatalf("codec: %v", err)
	}

	// Postgres when a DSN is set, in-memory stores otherwise.
	var db *sql.DB
	var (
		userStore  auth.UserStore
		cartStore  cart.Store
		itemStore  catalog.ItemStore
		orderStore catalog.OrderStore
	)
	if dsn := os.Getenv("STITCHMART_PG_DSN"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		userStore = auth.NewPGStore(db)
		cartStore = cart.NewPGStore(db)
		itemStore = catalog.NewPGItemStore(db)
		orderStore = catalog.NewPGOrderStore(db)
	} else {
		log.Print("STITCHMART_PG_DSN not set, using in-memory stores")
		userStore = auth.NewMemoryStore()
		cartStore = cart.NewMemoryStore()
		itemStore = catalog.NewMemoryItemStore()
		orderStore = catalog.NewMemoryOrderStore()
	}

	var accountOpts []auth.ServiceOption
	frontendURL := os.Getenv("STITCHMART_FRONTEND_URL")
	if apiKey := os.Getenv("STITCHMART_MAIL_API_KEY"); apiKey != "" {
		from := os.Getenv("STITCHMART_MAIL_FROM")
		if from == "" {
			from = "store@stitchmart.org"
		}
		mailer, err := mail.NewResend(apiKey)
		if err != nil {
			log.Fatalf("mailer: %v", err)
		}
		accountOpts = append(accountOpts,
			auth.WithMailer(mailer, from, frontendURL))
	} else {
		log.Print("STITCHMART_MAIL_API_KEY not set, reset mail disabled")
	}

	accounts, err := auth.NewService(userStore, codec, accountOpts...)
	if err != nil {
		log.Fatalf("account service: %v", err)
	}

	api := httpapi.New(httpapi.Config{
		ReadyProbe:     httpapi.ReadyProbe{DB: db},
		Version:        version,
		Accounts:       accounts,
		Catalog:        catalog.NewService(itemStore, orderStore),
		Carts:          cart.NewService(cartStore),
		Codec:          codec,
		Cookie:         auth.CookieOptions{Secure: os.Getenv("STITCHMART_COOKIE_SECURE") == "true"},
		FrontendOrigin: frontendURL,
	})

	addr := os.Getenv("STITCHMART_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting stitchmart-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
