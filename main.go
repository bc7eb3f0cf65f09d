package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "relay/internal/config"
	router "relay/internal/http"
	"relay/internal/messaging"
	"relay/internal/metrics"
	"relay/internal/repositories"
	"relay/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func newSender(env intconfig.Env, m *metrics.Metrics) messaging.Sender {
	switch env.Provider {
	case intconfig.ProviderMessageBird:
		return messaging.Instrument(messaging.NewMessageBirdSender(env.MessageBirdKey), messaging.ProviderMessageBird, m)
	default:
		return messaging.Instrument(messaging.NewTwilioSender(env.TwilioAccountSID, env.TwilioAuthToken), messaging.ProviderTwilio, m)
	}
}

func newRideStore(ctx context.Context, env intconfig.Env) (repositories.RideStore, func(), error) {
	if env.Store.Kind != intconfig.StoreRedis {
		return repositories.NewMemoryRideStore(), func() {}, nil
	}
	client, err := repositories.NewRedisClient(ctx, repositories.RedisConfig{
		Addr:     env.Store.RedisAddr,
		Password: env.Store.RedisPassword,
		DB:       env.Store.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewRedisRideStore(client, env.Store.RideTTL), func() { _ = client.Close() }, nil
}

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 5*time.Second)
	rides, closeStore, err := newRideStore(startCtx, env)
	cancelStart()
	if err != nil {
		log.Fatalf("Failed to set up ride store: %v", err)
	}
	defer closeStore()

	m := metrics.New(prometheus.DefaultRegisterer)
	sender := newSender(env, m)
	senderID := messaging.Identity(env.Channel, env.SenderPhoneNumber)
	driverID := messaging.Identity(env.Channel, env.DriverPhoneNumber)

	booking := services.BookingService{
		Sender: sender,
		Rides:  rides,
		Formatter: services.MessageFormatter{Payment: services.PaymentLink{
			Scheme:   env.Payment.Scheme,
			PayeeID:  env.Payment.PayeeID,
			AppName:  env.Payment.AppName,
			Currency: env.Payment.Currency,
		}},
		Metrics:        m,
		Channel:        env.Channel,
		SenderIdentity: senderID,
		DriverIdentity: driverID,
	}
	replies := &services.ReplyRouter{
		Sender:         sender,
		Rides:          rides,
		SenderIdentity: senderID,
		Timeout:        env.ForwardTimeout,
		Metrics:        m,
	}

	r := router.NewRouter(router.Deps{
		Booker:         booking,
		Replies:        replies,
		AllowedOrigins: env.CORSAllowedOrigins,
		Inbound:        messaging.InboundParserFor(env.Provider),
		Channel:        env.Channel,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server is running on http://localhost%s (provider=%s store=%s)", env.AppAddr, env.Provider, env.Store.Kind)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	replies.Wait()

	log.Println("Server stopped.")
}
