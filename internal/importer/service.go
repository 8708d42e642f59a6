package importer

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"recipekit/internal/batch"
	"recipekit/internal/config"
	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
	"recipekit/internal/logger"
	"recipekit/internal/port"
	"recipekit/internal/validator"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Service is the import entry point used by the HTTP layer and the CLI.
type Service interface {
	Import(ctx context.Context, input domain.RawImportInput, onProgress batch.ProgressFunc) (*domain.ImportResult, error)
	ParseIngredients(ctx context.Context, lines []string) (*ingredient.ParseOutcome, error)
	ListHistory(ctx context.Context, limit int) ([]domain.ImportLogEntry, error)
}

// ServiceDeps groups the collaborators of the import service. LogRepo and
// Archive are optional.
type ServiceDeps struct {
	Config        config.ImportConfig
	Engine        *validator.Engine
	Parser        *ingredient.Parser
	LogRepo       port.ImportLogRepository
	Archive       port.ObjectStorage
	ArchivePrefix string
	Logger        *logger.Logger
}

type importService struct {
	cfg           config.ImportConfig
	engine        *validator.Engine
	parser        *ingredient.Parser
	logRepo       port.ImportLogRepository
	archive       port.ObjectStorage
	archivePrefix string
	log           *logger.Logger
}

// NewService creates a new import Service.
func NewService(deps ServiceDeps) Service {
	engine := deps.Engine
	if engine == nil {
		engine = validator.NewDefaultEngine()
	}
	return &importService{
		cfg:           deps.Config,
		engine:        engine,
		parser:        deps.Parser,
		logRepo:       deps.LogRepo,
		archive:       deps.Archive,
		archivePrefix: deps.ArchivePrefix,
		log:           logger.OrNop(deps.Logger).With("component", "importer.service"),
	}
}

// Import runs one import attempt on a fresh orchestrator, then archives the
// raw text and records the attempt. Archive and history failures are logged,
// never returned.
func (s *importService) Import(ctx context.Context, input domain.RawImportInput, onProgress batch.ProgressFunc) (*domain.ImportResult, error) {
	orch := NewOrchestrator(s.cfg, s.engine, s.parser, s.log)
	res, err := orch.Run(ctx, input, onProgress)
	if err != nil {
		return nil, errors.Wrap(err, "running import")
	}

	// The caller may already be gone; bookkeeping still runs.
	bg := context.WithoutCancel(ctx)
	archiveKey := s.archiveRaw(bg, orch, input)
	s.record(bg, res, archiveKey)
	return res, nil
}

func (s *importService) archiveRaw(ctx context.Context, orch *Orchestrator, input domain.RawImportInput) string {
	if s.archive == nil || strings.TrimSpace(input.Text) == "" || len(input.Text) > s.cfg.MaxInputBytes {
		return ""
	}
	key := s.archivePrefix + orch.ID().String() + ".json"
	_, err := s.archive.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        strings.NewReader(input.Text),
		ContentType: "application/json",
		Size:        int64(len(input.Text)),
	})
	if err != nil {
		s.log.Warn("archiving raw import failed", "key", key, "error", err)
		return ""
	}
	return key
}

func (s *importService) record(ctx context.Context, res *domain.ImportResult, archiveKey string) {
	if s.logRepo == nil {
		return
	}
	entry := &domain.ImportLogEntry{
		ID:           res.Metadata.ImportID,
		SourceURL:    res.Metadata.SourceURL,
		Success:      res.Success,
		FinalState:   res.Metadata.FinalState,
		ErrorCount:   len(res.Errors),
		WarningCount: len(res.Warnings),
		DurationMs:   res.Metadata.ParsingDurationMs,
		ArchiveKey:   archiveKey,
		CreatedAt:    time.Now().UTC(),
	}
	if res.Recipe != nil {
		entry.RecipeName = res.Recipe.Name
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.log.Warn("recording import failed", "import_id", entry.ID, "error", err)
	}
}

// ParseIngredients decomposes arbitrary ingredient lines outside an import.
func (s *importService) ParseIngredients(ctx context.Context, lines []string) (*ingredient.ParseOutcome, error) {
	if len(lines) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidRequest, "at least one ingredient line is required")
	}
	if s.parser == nil {
		out := &ingredient.ParseOutcome{Ingredients: make([]domain.ParsedIngredient, len(lines))}
		for i, line := range lines {
			out.Ingredients[i] = ingredient.ParseFallback(line)
		}
		return out, nil
	}
	return s.parser.ParseAll(ctx, lines, nil)
}

// ListHistory returns the most recent import attempts, newest first. Without
// a repository it returns an empty list.
func (s *importService) ListHistory(ctx context.Context, limit int) ([]domain.ImportLogEntry, error) {
	if s.logRepo == nil {
		return []domain.ImportLogEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	entries, err := s.logRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing import history")
	}
	return entries, nil
}
