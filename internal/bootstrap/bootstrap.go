package bootstrap

import (
	"context"
	"fmt"

	"github.com/akinsella123/CourseFindr/internal/config"
	"github.com/akinsella123/CourseFindr/internal/core/nlp"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
	"github.com/akinsella123/CourseFindr/internal/core/usecase"
	"github.com/akinsella123/CourseFindr/internal/core/vectorspace"
	"github.com/akinsella123/CourseFindr/internal/infrastructure/extractor/resumefile"
	"github.com/akinsella123/CourseFindr/internal/infrastructure/queue/nats"
	"github.com/akinsella123/CourseFindr/internal/infrastructure/repository/postgres"
	"github.com/akinsella123/CourseFindr/internal/infrastructure/resilience"
	neo4jgraph "github.com/akinsella123/CourseFindr/internal/infrastructure/skillgraph/neo4j"
	"github.com/akinsella123/CourseFindr/internal/infrastructure/vocabconfig"
)

type App struct {
	Config config.Config

	Queue ports.CatalogEventBus
	Repo  ports.CourseRepository

	RecommendUC ports.CourseRecommender
	ExtractUC   ports.TagExtractionService
	CatalogUC   ports.CatalogService
	RefitUC     ports.SpaceRefitter

	closeFn func(context.Context)
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewCourseRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	matcherCfg, err := vocabconfig.Load(cfg.MatcherConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load matcher config: %w", err)
	}

	normalizer := nlp.NewNormalizer(matcherCfg.Stopwords...)
	matcher := nlp.NewDictionaryMatcher(normalizer,
		nlp.WithFuzzyThreshold(cfg.FuzzyThreshold),
		nlp.WithPhraseWindow(cfg.PhraseWindow),
		nlp.WithMinCandidateCount(cfg.MinCandidateHits),
		nlp.WithAliases(matcherCfg.Aliases),
	)
	spaces := vectorspace.NewManager(vectorspace.New(normalizer))

	executor := resilience.NewExecutor(resilience.DefaultPolicy())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var suggester ports.SkillSuggester
	var graph *neo4jgraph.Suggester
	if cfg.Neo4jEnabled {
		graph, err = neo4jgraph.New(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			queue.Close()
			_ = db.Close()
			return nil, fmt.Errorf("init skill graph: %w", err)
		}
		suggester = graph
	}

	files := resumefile.New()

	recommendUC := usecase.NewRecommendUseCase(repo, spaces, matcher, suggester, matcherCfg.Vocabulary, cfg.MatchTopK)
	extractUC := usecase.NewExtractTagsUseCase(repo, matcher, files, suggester, matcherCfg.Vocabulary)
	catalogUC := usecase.NewCatalogUseCase(repo, queue)
	refitUC := usecase.NewRefitSpaceUseCase(repo, spaces)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		RecommendUC: recommendUC,
		ExtractUC:   extractUC,
		CatalogUC:   catalogUC,
		RefitUC:     refitUC,

		closeFn: func(ctx context.Context) {
			queue.Close()
			if graph != nil {
				_ = graph.Close(ctx)
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close(ctx context.Context) {
	if a.closeFn != nil {
		a.closeFn(ctx)
	}
}
