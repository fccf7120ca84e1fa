package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"social-service/configs"
	"social-service/internal/comment"
	"social-service/internal/events"
	"social-service/internal/follow"
	"social-service/internal/like"
	"social-service/internal/media"
	"social-service/internal/migrate"
	"social-service/internal/post"
	"social-service/internal/profile"
	"social-service/internal/ratelimit"
	"social-service/internal/scheduler"
	"social-service/internal/shared/db"
	"social-service/internal/shared/httpx"
	"social-service/internal/tag"
	pkgredis "social-service/pkg/redis"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("social-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	store := db.Open(cfg)

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	ev := events.NewWriter(cfg.KafkaBrokerURL, cfg.KafkaTopic)
	defer ev.Close()

	storage, err := media.NewS3(cfg)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		log.Fatalf("s3 bucket: %v", err)
	}

	rdb := pkgredis.NewClient(cfg)
	limiter := ratelimit.New(rdb, cfg.RateLimit, cfg.RateLimitWindow)

	tagRepo := tag.NewRepository(store)
	tagSvc := tag.NewService(tagRepo)

	profileRepo := profile.NewRepository(store)
	followRepo := follow.NewRepository(store)
	followSvc := follow.NewService(followRepo, profileRepo, ev)

	jobStore := scheduler.NewStore(store)

	likeRepo := like.NewRepository(store)
	commentRepo := comment.NewRepository(store)

	postRepo := post.NewRepository(store)
	postSvc := post.NewService(postRepo, tagSvc, profileRepo, likeRepo, commentRepo, storage, ev)

	likeSvc := like.NewService(likeRepo, postRepo, ev)
	commentSvc := comment.NewService(commentRepo, postRepo, ev)

	profileSvc := profile.NewService(profileRepo, postRepo, followSvc, storage)

	worker := scheduler.NewWorker(jobStore, postRepo, ev, cfg.SchedulerInterval)
	go worker.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	ph := profile.NewHandler(profileSvc, followSvc, cfg.PageLimit, cfg.PageLimitCap)
	mux.Handle("GET /profiles", httpx.Wrap(ph.List))
	mux.Handle("GET /profiles/{id}", httpx.Wrap(ph.GetByID))

	psh := post.NewHandler(postSvc, likeSvc, commentSvc, cfg.PageLimit, cfg.PageLimitCap)
	mux.Handle("GET /posts", httpx.Wrap(psh.List))
	mux.Handle("GET /posts/{id}", httpx.Wrap(psh.GetByID))

	th := tag.NewHandler(tagSvc)
	mux.Handle("GET /hashtags", httpx.Wrap(th.List))
	mux.Handle("GET /hashtags/{id}", httpx.Wrap(th.GetByID))

	protect := func(pattern string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.AuthMiddleware(limiter.Middleware(httpx.Wrap(fn))))
	}

	protect("POST /profiles", ph.Create)
	protect("PUT /profiles/{id}", ph.Update)
	protect("DELETE /profiles/{id}", ph.Delete)
	protect("POST /profiles/{id}/upload-image", ph.UploadImage)
	protect("POST /profiles/{id}/follow", ph.Follow)
	protect("POST /profiles/{id}/unfollow", ph.Unfollow)

	protect("GET /posts/liked-posts", psh.LikedPosts)
	protect("POST /posts", psh.Create)
	protect("PUT /posts/{id}", psh.Update)
	protect("DELETE /posts/{id}", psh.Delete)
	protect("POST /posts/{id}/upload-image", psh.UploadImage)
	protect("POST /posts/{id}/like", psh.Like)
	protect("POST /posts/{id}/remove-like", psh.RemoveLike)
	protect("POST /posts/{id}/add-comment", psh.AddComment)

	ch := comment.NewHandler(commentSvc)
	protect("PUT /comments/{id}", ch.Update)
	protect("DELETE /comments/{id}", ch.Delete)

	protect("POST /hashtags", th.Create)
	protect("PUT /hashtags/{id}", th.Update)
	protect("DELETE /hashtags/{id}", th.Delete)

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("social-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
