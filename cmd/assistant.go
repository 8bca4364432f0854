package main

import (
	"context"
	"fmt"

	"github.com/telaflix/telaflix/internal/models"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// assistantFallback is shown whenever the assistant cannot produce an
// answer. The command never fails on provider errors.
const assistantFallback = "No momento estou com dificuldades para responder. " +
	"Que tal explorar a seção Em Alta do catálogo enquanto isso?"

// AssistantRecommend answers a free-text question against the cached catalog.
func (r *Runner) AssistantRecommend(ctx context.Context, cmd *cli.Command) error {
	question := cmd.StringArg("question")
	if question == "" {
		return fmt.Errorf("%w: question", shared.ErrMissingArgument)
	}

	var catalog []models.Movie
	if r.store != nil {
		if sections := r.store.CachedSections(); sections != nil {
			catalog = sections.All()
		}
	}

	if r.assistant == nil {
		r.logger.Warn("assistant not configured, showing fallback")
		return r.writePlain("%s\n", assistantFallback)
	}

	r.logger.Infof("asking assistant with %d catalog titles in context", len(catalog))

	answer, err := r.assistant.Recommend(ctx, question, catalog, r.config.App.Language)
	if err != nil {
		r.logger.Warnf("assistant request failed: %v", err)
		return r.writePlain("%s\n", assistantFallback)
	}

	return r.writePlain("%s\n", answer)
}
