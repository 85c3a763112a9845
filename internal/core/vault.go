// Package core ties storage, the LLM and the inference pipelines together
// behind the Vault service.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/memoryvault/internal/config"
	"github.com/agenthands/memoryvault/internal/core/enrich"
	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/core/signals"
	"github.com/agenthands/memoryvault/internal/core/themes"
	"github.com/agenthands/memoryvault/internal/core/timeline"
	"github.com/agenthands/memoryvault/internal/core/years"
	"github.com/agenthands/memoryvault/internal/llm"
	"github.com/agenthands/memoryvault/internal/store"
)

var (
	ErrNotFound          = store.ErrNotFound
	ErrEmptyText         = errors.New("memory text is required")
	ErrEmptyQuery        = errors.New("search query is required")
	ErrEmptyPrompt       = errors.New("prompt is required")
	ErrNoEmbedder        = errors.New("embeddings are not available for this provider")
	ErrModelsUnsupported = errors.New("model listing is not supported by this provider")
	ErrInvalidYear       = fmt.Errorf("year must be between %d and %d", years.MinYear, years.MaxYear)
	ErrInvalidTheme      = errors.New("unknown theme")
	ErrBackfillRunning   = errors.New("a year backfill is already running")
)

type Vault struct {
	Store      store.Store
	LLM        llm.LLMClient
	Embedder   llm.EmbedderClient
	Tagger     *enrich.Tagger
	Summarizer *enrich.Summarizer
	Profiles   *enrich.ProfileParser
	Classifier *themes.Classifier
	Resolver   *years.Resolver
	// YearModel is used for year inference when the caller names no model.
	YearModel string
	Logger    *slog.Logger

	NewID func() string
	Now   func() time.Time

	// writeMu serialises store writes that must not interleave with the
	// backfill's final read-and-save.
	writeMu    sync.Mutex
	backfillMu sync.Mutex
}

// CheckYear accepts nil or a year within [years.MinYear, years.MaxYear].
func CheckYear(year *int) error {
	if year != nil && (*year < years.MinYear || *year > years.MaxYear) {
		return ErrInvalidYear
	}
	return nil
}

// CheckTheme accepts model.Unclassified or one of the known themes.
func CheckTheme(theme model.Theme) error {
	if theme != model.Unclassified && !theme.Classified() {
		return ErrInvalidTheme
	}
	return nil
}

func (v *Vault) put(ctx context.Context, m model.Memory) error {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	return v.Store.Put(ctx, m)
}

func NewVault(st store.Store, llmClient llm.LLMClient, embedder llm.EmbedderClient, prompts config.Prompts) *Vault {
	return &Vault{
		Store:      st,
		LLM:        llmClient,
		Embedder:   embedder,
		Tagger:     enrich.NewTagger(llmClient, prompts.Tags),
		Summarizer: enrich.NewSummarizer(llmClient, prompts.Summary),
		Profiles:   enrich.NewProfileParser(llmClient, prompts.Profile),
		Classifier: themes.NewClassifier(llmClient, prompts.Theme),
		Resolver:   years.NewResolver(years.NewInferrer(llmClient, prompts.Year)),
		Logger:     slog.Default(),
		NewID:      uuid.NewString,
		Now:        time.Now,
	}
}

type AddParams struct {
	Text      string
	Tags      []string
	Model     string
	Year      *int
	Theme     model.Theme
	Timeframe string
}

// AddMemory embeds, tags and summarises the text and stores the result.
// Generated tags are used only when the caller supplies none. A missing
// timeframe is filled from the keyword signals in the text.
func (v *Vault) AddMemory(ctx context.Context, p AddParams) (model.Memory, error) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return model.Memory{}, ErrEmptyText
	}
	if err := CheckYear(p.Year); err != nil {
		return model.Memory{}, err
	}
	if err := CheckTheme(p.Theme); err != nil {
		return model.Memory{}, err
	}

	m := model.Memory{
		ID:        v.NewID(),
		Text:      text,
		Year:      p.Year,
		Theme:     p.Theme,
		Timeframe: strings.TrimSpace(p.Timeframe),
		CreatedAt: v.Now().UTC(),
	}

	if v.Embedder != nil {
		vec, err := v.Embedder.Embed(ctx, text)
		if err != nil {
			return model.Memory{}, fmt.Errorf("failed to embed memory: %w", err)
		}
		m.Embedding = vec
	}

	m.Tags = enrich.NormalizeTags(p.Tags)
	if len(m.Tags) == 0 {
		m.Tags = v.Tagger.Generate(ctx, text, p.Model)
	}
	m.Summary = v.Summarizer.Summarize(ctx, text, p.Model)
	if m.Timeframe == "" {
		m.Timeframe = signals.Extract(text).Timeframe
	}

	if err := v.put(ctx, m); err != nil {
		return model.Memory{}, fmt.Errorf("failed to save memory: %w", err)
	}
	v.Logger.Info("memory saved", "id", m.ID, "tags", len(m.Tags))
	return m, nil
}

func (v *Vault) ListMemories(ctx context.Context) ([]model.Memory, error) {
	return v.Store.List(ctx)
}

func (v *Vault) GetMemory(ctx context.Context, id string) (model.Memory, error) {
	return v.Store.Get(ctx, id)
}

// UpdateParams leaves a field untouched when it is empty (Text) or nil (Tags).
// A non-nil empty Tags clears the tags.
type UpdateParams struct {
	Text string
	Tags *[]string
}

// UpdateMemory replaces the text and/or tags. New text is re-embedded and
// re-summarised.
func (v *Vault) UpdateMemory(ctx context.Context, id string, p UpdateParams) (model.Memory, error) {
	m, err := v.Store.Get(ctx, id)
	if err != nil {
		return model.Memory{}, err
	}

	if text := strings.TrimSpace(p.Text); text != "" && text != m.Text {
		m.Text = text
		if v.Embedder != nil {
			vec, err := v.Embedder.Embed(ctx, text)
			if err != nil {
				return model.Memory{}, fmt.Errorf("failed to embed memory: %w", err)
			}
			m.Embedding = vec
		}
		m.Summary = v.Summarizer.Summarize(ctx, text, "")
	}
	if p.Tags != nil {
		m.Tags = enrich.NormalizeTags(*p.Tags)
	}

	if err := v.put(ctx, m); err != nil {
		return model.Memory{}, fmt.Errorf("failed to update memory: %w", err)
	}
	return m, nil
}

func (v *Vault) UpdateTags(ctx context.Context, id string, tags []string) (model.Memory, error) {
	if tags == nil {
		tags = []string{}
	}
	return v.UpdateMemory(ctx, id, UpdateParams{Tags: &tags})
}

func (v *Vault) DeleteMemory(ctx context.Context, id string) error {
	v.writeMu.Lock()
	err := v.Store.Delete(ctx, id)
	v.writeMu.Unlock()
	if err != nil {
		return err
	}
	v.Logger.Info("memory deleted", "id", id)
	return nil
}

// ClassifyTheme classifies free text without touching the store.
func (v *Vault) ClassifyTheme(ctx context.Context, text, modelID string) themes.Result {
	return v.Classifier.Classify(ctx, text, modelID)
}

// ClassifyMemory classifies a stored memory and saves the theme when the
// model gave a valid one. An unclassified result leaves the memory as is.
func (v *Vault) ClassifyMemory(ctx context.Context, id, modelID string) (themes.Result, error) {
	m, err := v.Store.Get(ctx, id)
	if err != nil {
		return themes.Result{}, err
	}

	res := v.Classifier.Classify(ctx, m.Text, modelID)
	if !res.Theme.Classified() {
		return res, nil
	}

	m.Theme = res.Theme
	if m.Timeframe == "" {
		m.Timeframe = res.Context.Timeframe
	}
	if err := v.put(ctx, m); err != nil {
		return res, fmt.Errorf("failed to save theme: %w", err)
	}
	return res, nil
}

// InferYear resolves the year of free text without touching the store.
func (v *Vault) InferYear(ctx context.Context, text string, birthYear int, modelID string) years.Result {
	if modelID == "" {
		modelID = v.YearModel
	}
	return v.Resolver.Resolve(ctx, text, birthYear, modelID)
}

// InferMemoryYear resolves and saves the year of a stored memory. A year
// that is already stored is returned as is.
func (v *Vault) InferMemoryYear(ctx context.Context, id string, birthYear int, modelID string) (years.Result, error) {
	m, err := v.Store.Get(ctx, id)
	if err != nil {
		return years.Result{}, err
	}
	if m.HasYear() {
		return years.Result{Year: *m.Year, Source: years.SourceStored}, nil
	}

	res := v.InferYear(ctx, m.Text, birthYear, modelID)
	if !res.OK() {
		return res, nil
	}
	m.Year = res.Ptr()
	if err := v.put(ctx, m); err != nil {
		return res, fmt.Errorf("failed to save year: %w", err)
	}
	return res, nil
}

// SetTheme stores a user-picked theme. model.Unclassified clears it.
func (v *Vault) SetTheme(ctx context.Context, id string, theme model.Theme) (model.Memory, error) {
	if err := CheckTheme(theme); err != nil {
		return model.Memory{}, err
	}
	m, err := v.Store.Get(ctx, id)
	if err != nil {
		return model.Memory{}, err
	}
	m.Theme = theme
	if err := v.put(ctx, m); err != nil {
		return model.Memory{}, fmt.Errorf("failed to save theme: %w", err)
	}
	return m, nil
}

// SetYear stores a user-entered year. nil clears it.
func (v *Vault) SetYear(ctx context.Context, id string, year *int) (model.Memory, error) {
	if err := CheckYear(year); err != nil {
		return model.Memory{}, err
	}
	m, err := v.Store.Get(ctx, id)
	if err != nil {
		return model.Memory{}, err
	}
	m.Year = year
	if err := v.put(ctx, m); err != nil {
		return model.Memory{}, fmt.Errorf("failed to save year: %w", err)
	}
	return m, nil
}

func (v *Vault) Timeline(ctx context.Context, birthYear int) (timeline.Timeline, error) {
	memories, err := v.Store.List(ctx)
	if err != nil {
		return timeline.Timeline{}, err
	}
	return timeline.Build(memories, birthYear), nil
}

func (v *Vault) ParseProfile(ctx context.Context, text, modelID string) (*model.UserProfile, error) {
	return v.Profiles.Parse(ctx, text, modelID)
}

// Generate forwards a raw prompt to the LLM.
func (v *Vault) Generate(ctx context.Context, prompt, modelID string, options map[string]any) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return v.LLM.Generate(ctx, prompt, llm.WithModel(modelID), llm.WithOptions(options))
}

// Models lists the provider's models in Ollama's /api/tags shape.
func (v *Vault) Models(ctx context.Context) (json.RawMessage, error) {
	lister, ok := v.LLM.(llm.ModelLister)
	if !ok {
		return nil, ErrModelsUnsupported
	}
	return lister.ListModels(ctx)
}
