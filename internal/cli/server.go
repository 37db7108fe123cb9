package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concurseiro-challenge-service/internal/ai"
	"concurseiro-challenge-service/internal/app"
	"concurseiro-challenge-service/internal/challenge"
	"concurseiro-challenge-service/internal/config"
	"concurseiro-challenge-service/internal/domain"
	"concurseiro-challenge-service/internal/infra/memory"
	infrapg "concurseiro-challenge-service/internal/infra/postgres"
	infraredis "concurseiro-challenge-service/internal/infra/redis"
	transport "concurseiro-challenge-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const maxMiniGameErrors = 3

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the challenge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	cacheTTL := config.TTLDuration(cfg.Redis.TTL, 26*time.Hour)
	subjectsTTL := config.TTLDuration(cfg.Challenge.SubjectsTTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var students app.StudentRepository
	var subjects app.SubjectRepository
	if pool != nil {
		loader := infrapg.NewContentLoader(pool)
		students = infrapg.NewStudentStore(pool)
		subjects = app.NewEnrollmentRepository(loader, loader)
	} else {
		// Demo mode: fixed in-memory content; swap in postgres for production.
		store := memory.NewStudentStore()
		store.Seed(domain.NewStudentProgress("demo-student"))
		students = store
		subjects = memory.NewStaticSubjectRepository(map[string][]domain.Subject{
			"demo-student": sampleSubjects(),
		})
	}

	if redisClient != nil {
		subjects = infraredis.NewSubjectRepository(redisClient, subjects, subjectsTTL)
	}

	var cache app.ChallengeCache
	if redisClient != nil {
		cache = infraredis.NewChallengeCache(redisClient, cacheTTL)
	} else {
		cache = memory.NewChallengeCache(cacheTTL)
	}

	var completer app.TextCompleter
	if cfg.AI.URL != "" {
		completer = ai.NewClient(cfg.AI.URL, cfg.AI.Model, cfg.AI.APIKey)
	}

	service := app.NewChallengeService(students, subjects, cache, completer, app.Defaults{
		ReviewCount:     config.CountOrDefault(cfg.Challenge.ReviewCount, 10),
		GlossaryCount:   config.CountOrDefault(cfg.Challenge.GlossaryCount, 5),
		PortugueseCount: config.CountOrDefault(cfg.Challenge.PortugueseCount, 5),
		IncorrectScope:  challenge.IncorrectScope(cfg.Challenge.IncorrectScope),
	})

	handler := transport.NewHandler(service, cfg.Server.APIKey)
	miniGames := transport.NewMiniGameHandler(cfg.Server.APIKey, maxMiniGameErrors)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/minigame", miniGames.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting challenge service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleSubjects provides minimal demo content for running without a database.
func sampleSubjects() []domain.Subject {
	return []domain.Subject{
		{
			ID:   "dir-const",
			Name: "Direito Constitucional",
			Topics: []domain.Topic{
				{
					ID:   "direitos-fundamentais",
					Name: "Direitos Fundamentais",
					Questions: []domain.Question{
						{
							ID:        "q-remedios-1",
							Statement: "Qual remédio constitucional protege o direito de locomoção?",
							Options: []string{
								"Habeas corpus",
								"Habeas data",
								"Mandado de segurança",
								"Mandado de injunção",
								"Ação popular",
							},
							CorrectAnswer: "Habeas corpus",
							Justification: "O habeas corpus tutela a liberdade de locomoção (CF, art. 5º, LXVIII).",
						},
					},
					Glossary: []domain.GlossaryTerm{
						{Term: "Habeas Corpus", Definition: "Remédio constitucional contra ilegalidade ou abuso de poder que atinja a liberdade de locomoção."},
					},
				},
			},
		},
	}
}
