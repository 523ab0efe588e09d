// cmd/deck-service/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"foodswipe/internal/common/config"
	"foodswipe/internal/common/database"
	"foodswipe/internal/common/logger"
	"foodswipe/internal/common/metrics"
	"foodswipe/internal/common/observability"
	"foodswipe/internal/common/validation"
	"foodswipe/internal/deck"
	"foodswipe/internal/models"
	"foodswipe/internal/repository"
	"foodswipe/internal/scoring"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

type server struct {
	composer    *deck.Composer
	scorer      deck.Scorer
	restaurants *repository.RestaurantRepository
	swipes      *repository.SwipeRepository
	profiles    *repository.ProfileRepository
	obs         *observability.Observability
	logger      logger.Logger
}

type deckRequest struct {
	UserID   string             `json:"userId"`
	GroupID  string             `json:"groupId,omitempty"`
	Tutorial bool               `json:"tutorial,omitempty"`
	Filters  json.RawMessage    `json:"filters,omitempty"`
	Location *models.Coordinate `json:"location,omitempty"`
}

type deckResponse struct {
	Context string              `json:"context"`
	Deck    []models.Restaurant `json:"deck"`
	Size    int                 `json:"size"`
}

func (s *server) handleDeck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req deckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	swipeCtx := models.PersonalContext
	if req.GroupID != "" {
		swipeCtx = models.GroupContext(req.GroupID)
	}

	filters := models.NewFilterConfiguration()
	if len(req.Filters) > 0 {
		parsed, err := validation.ParseFilterConfiguration(req.Filters)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filters = parsed
	}

	ctx := r.Context()

	restaurants, err := s.restaurants.FetchAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("restaurant fetch failed", nil)
		http.Error(w, "failed to load restaurants", http.StatusBadGateway)
		return
	}

	swiped, err := s.swipes.SwipedSet(ctx, req.UserID, swipeCtx)
	if err != nil {
		s.logger.WithError(err).Error("swipe history fetch failed", nil)
		http.Error(w, "failed to load swipe history", http.StatusBadGateway)
		return
	}

	swipeCount, err := s.swipes.CountUserSwipes(ctx, req.UserID)
	if err != nil {
		s.logger.WithError(err).Error("swipe count fetch failed", nil)
		http.Error(w, "failed to load swipe history", http.StatusBadGateway)
		return
	}

	profile, err := s.profiles.FetchPreferences(ctx, req.UserID)
	if err != nil {
		// A missing or failing profile degrades to no preference signal.
		s.logger.WithError(err).Warn("profile fetch failed, composing without profile", nil)
		profile = nil
	}

	start := time.Now()
	cards := s.composer.Compose(deck.Input{
		Restaurants:    restaurants,
		Swiped:         swiped,
		Filters:        filters,
		Profile:        profile,
		Location:       req.Location,
		Context:        swipeCtx,
		TutorialActive: req.Tutorial,
		SwipeCount:     swipeCount,
		Scorer:         s.scorer,
	})
	s.obs.RecordComposeDuration(ctx, time.Since(start), swipeCtx.String())
	s.obs.RecordComposition(ctx, swipeCtx.String())
	metrics.DecksComposed.WithLabelValues(swipeCtx.String()).Inc()
	metrics.DeckSize.WithLabelValues(swipeCtx.String()).Observe(float64(len(cards)))

	writeJSON(w, http.StatusOK, deckResponse{
		Context: swipeCtx.String(),
		Deck:    cards,
		Size:    len(cards),
	})
}

type swipeRequest struct {
	UserID       string `json:"userId"`
	RestaurantID string `json:"restaurantId"`
	Liked        bool   `json:"liked"`
	GroupID      string `json:"groupId,omitempty"`
}

func (s *server) handleSwipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.RestaurantID == "" {
		http.Error(w, "userId and restaurantId are required", http.StatusBadRequest)
		return
	}

	swipeCtx := models.PersonalContext
	if req.GroupID != "" {
		swipeCtx = models.GroupContext(req.GroupID)
	}

	rec, err := s.swipes.Record(r.Context(), req.UserID, req.RestaurantID, req.Liked, swipeCtx)
	if err != nil {
		s.logger.WithError(err).Error("swipe insert failed", nil)
		http.Error(w, "failed to record swipe", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

type resetRequest struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId,omitempty"`
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	swipeCtx := models.PersonalContext
	if req.GroupID != "" {
		swipeCtx = models.GroupContext(req.GroupID)
	}

	if err := s.swipes.Reset(r.Context(), req.UserID, swipeCtx); err != nil {
		s.logger.WithError(err).Error("swipe reset failed", nil)
		http.Error(w, "failed to reset swipes", http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting deck service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("deck-service")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (best effort; profile cache degrades without it) ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis client init failed", zap.Error(err))
	}
	defer rdb.Close()
	if err := rdb.Ping(ctx); err != nil {
		zapLog.Warn("redis unreachable, profile cache disabled", zap.Error(err))
	}

	composer := deck.NewComposer(deck.Config{
		RerankSwipeThreshold: cfg.Deck.RerankSwipeThreshold,
		HeadFraction:         cfg.Deck.HeadFraction,
		TutorialFirst:        cfg.Deck.TutorialFirst,
		TutorialSecond:       cfg.Deck.TutorialSecond,
	}, log)

	srv := &server{
		composer:    composer,
		scorer:      scoring.NewTotalScore(),
		restaurants: repository.NewRestaurantRepository(pg.DB, log),
		swipes:      repository.NewSwipeRepository(pg.DB, log),
		profiles: repository.NewProfileRepository(
			pg.DB, rdb.Client,
			time.Duration(cfg.Database.Redis.ProfileCacheTTL)*time.Second, log),
		obs:    obs,
		logger: log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/deck", srv.handleDeck)
	mux.HandleFunc("/v1/swipes", srv.handleSwipe)
	mux.HandleFunc("/v1/swipes/reset", srv.handleReset)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pg.Ping(r.Context()); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: corsMiddleware.Handler(mux),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down deck service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}
