package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/memoryvault/internal/core"
	"github.com/agenthands/memoryvault/internal/core/enrich"
	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/core/themes"
)

// fail maps vault errors to status codes. Anything unexpected is a 500
// carrying action as the message.
func (s *Server) fail(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Memory not found"})
	case errors.Is(err, core.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Memory text is required"})
	case errors.Is(err, core.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
	case errors.Is(err, core.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
	case errors.Is(err, core.ErrInvalidYear):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidTheme):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be one of the known theme IDs or null"})
	case errors.Is(err, core.ErrBackfillRunning):
		c.JSON(http.StatusConflict, gin.H{"error": "A year backfill is already running"})
	case errors.Is(err, enrich.ErrEmptyProfileText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile text is required"})
	default:
		s.Logger.Error(action, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": action, "details": err.Error()})
	}
}

func views(memories []model.Memory) []model.MemoryView {
	out := make([]model.MemoryView, len(memories))
	for i, m := range memories {
		out[i] = m.View()
	}
	return out
}

func (s *Server) ListModels(c *gin.Context) {
	raw, err := s.Vault.Models(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to fetch models", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

type GenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Options map[string]any `json:"options"`
}

func (s *Server) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	out, err := s.Vault.Generate(c.Request.Context(), req.Prompt, req.Model, req.Options)
	if err != nil {
		s.fail(c, "Failed to generate completion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"model": req.Model, "response": out, "done": true})
}

func (s *Server) ListMemories(c *gin.Context) {
	memories, err := s.Vault.ListMemories(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to list memories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"memories": views(memories)})
}

func (s *Server) GetMemory(c *gin.Context) {
	m, err := s.Vault.GetMemory(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, "Failed to get memory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"memory": m.View()})
}

type AddMemoryRequest struct {
	Text      string          `json:"text"`
	Tags      []string        `json:"tags"`
	Model     string          `json:"model"`
	Year      *int            `json:"year"`
	Theme     json.RawMessage `json:"theme"`
	Timeframe string          `json:"timeframe"`
}

// parseTheme accepts null, an absent value or a known theme ID.
func parseTheme(raw json.RawMessage) (model.Theme, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return model.Unclassified, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.Unclassified, core.ErrInvalidTheme
	}
	theme, ok := model.ParseTheme(s)
	if !ok {
		return model.Unclassified, core.ErrInvalidTheme
	}
	return theme, nil
}

func (s *Server) AddMemory(c *gin.Context) {
	var req AddMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	theme, err := parseTheme(req.Theme)
	if err != nil {
		s.fail(c, "Failed to save memory", err)
		return
	}

	m, err := s.Vault.AddMemory(c.Request.Context(), core.AddParams{
		Text:      req.Text,
		Tags:      req.Tags,
		Model:     req.Model,
		Year:      req.Year,
		Theme:     theme,
		Timeframe: req.Timeframe,
	})
	if err != nil {
		s.fail(c, "Failed to save memory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "memory": m.View()})
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	results, err := s.Vault.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		s.fail(c, "Failed to search memories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// UpdateMemoryRequest distinguishes an absent year or theme from an
// explicit null, which clears the field.
type UpdateMemoryRequest struct {
	Text  string          `json:"text"`
	Tags  *[]string       `json:"tags"`
	Year  json.RawMessage `json:"year"`
	Theme json.RawMessage `json:"theme"`
}

func (s *Server) UpdateMemory(c *gin.Context) {
	var req UpdateMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var year *int
	if len(req.Year) > 0 {
		if err := json.Unmarshal(req.Year, &year); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Year must be a number or null"})
			return
		}
		if err := core.CheckYear(year); err != nil {
			s.fail(c, "Failed to update memory", err)
			return
		}
	}
	theme, err := parseTheme(req.Theme)
	if err != nil {
		s.fail(c, "Failed to update memory", err)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	m, err := s.Vault.UpdateMemory(ctx, id, core.UpdateParams{Text: req.Text, Tags: req.Tags})
	if err != nil {
		s.fail(c, "Failed to update memory", err)
		return
	}
	if len(req.Year) > 0 {
		if m, err = s.Vault.SetYear(ctx, id, year); err != nil {
			s.fail(c, "Failed to update memory", err)
			return
		}
	}
	if len(req.Theme) > 0 {
		if m, err = s.Vault.SetTheme(ctx, id, theme); err != nil {
			s.fail(c, "Failed to update memory", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "memory": m.View()})
}

type UpdateTagsRequest struct {
	Tags *[]string `json:"tags"`
}

func (s *Server) UpdateTags(c *gin.Context) {
	var req UpdateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tags == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tags must be an array"})
		return
	}

	m, err := s.Vault.UpdateTags(c.Request.Context(), c.Param("id"), *req.Tags)
	if err != nil {
		s.fail(c, "Failed to update tags", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "memory": gin.H{"id": m.ID, "tags": m.Tags}})
}

func (s *Server) DeleteMemory(c *gin.Context) {
	if err := s.Vault.DeleteMemory(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, "Failed to delete memory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ClassifyRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

func (s *Server) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	c.JSON(http.StatusOK, s.Vault.ClassifyTheme(c.Request.Context(), req.Text, req.Model))
}

func (s *Server) ClassifyMemory(c *gin.Context) {
	var req ClassifyRequest
	_ = c.ShouldBindJSON(&req)

	res, err := s.Vault.ClassifyMemory(c.Request.Context(), c.Param("id"), req.Model)
	if err != nil {
		s.fail(c, "Failed to classify memory", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type InferYearRequest struct {
	Text      string `json:"text"`
	BirthYear int    `json:"birthYear"`
	Model     string `json:"model"`
}

func (s *Server) birthYear(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.BirthYear
}

func (s *Server) InferYear(c *gin.Context) {
	var req InferYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	res := s.Vault.InferYear(c.Request.Context(), req.Text, s.birthYear(req.BirthYear), req.Model)
	c.JSON(http.StatusOK, gin.H{"year": res.Ptr(), "source": res.Source})
}

func (s *Server) InferMemoryYear(c *gin.Context) {
	var req InferYearRequest
	_ = c.ShouldBindJSON(&req)

	res, err := s.Vault.InferMemoryYear(c.Request.Context(), c.Param("id"), s.birthYear(req.BirthYear), req.Model)
	if err != nil {
		s.fail(c, "Failed to infer year", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": res.Ptr(), "source": res.Source})
}

type BackfillRequest struct {
	BirthYear int    `json:"birthYear"`
	Model     string `json:"model"`
	LLMOnly   bool   `json:"llmOnly"`
}

func (s *Server) BackfillYears(c *gin.Context) {
	var req BackfillRequest
	_ = c.ShouldBindJSON(&req)

	report, err := s.Vault.BackfillYears(c.Request.Context(), core.BackfillOptions{
		BirthYear: s.birthYear(req.BirthYear),
		Model:     req.Model,
		Delay:     s.BackfillDelay,
		LLMOnly:   req.LLMOnly,
	})
	if err != nil {
		s.fail(c, "Failed to backfill years", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) Timeline(c *gin.Context) {
	birthYear := s.BirthYear
	if v := c.Query("birthYear"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birthYear must be a number"})
			return
		}
		birthYear = y
	}

	tl, err := s.Vault.Timeline(c.Request.Context(), birthYear)
	if err != nil {
		s.fail(c, "Failed to build timeline", err)
		return
	}
	c.JSON(http.StatusOK, tl)
}

type ParseProfileRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

func (s *Server) ParseProfile(c *gin.Context) {
	var req ParseProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile, err := s.Vault.ParseProfile(c.Request.Context(), req.Text, req.Model)
	if err != nil {
		s.fail(c, "Could not parse profile", err)
		return
	}
	var birthYear *int
	if y := profile.Year(); y > 0 {
		birthYear = &y
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "birthYear": birthYear})
}

func (s *Server) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": themes.All(), "genericInitialPrompt": themes.GenericInitialPrompt})
}

func (s *Server) GetTheme(c *gin.Context) {
	def, ok := themes.Lookup(model.Theme(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}
	c.JSON(http.StatusOK, def)
}

func (s *Server) FollowUp(c *gin.Context) {
	def, ok := themes.Lookup(model.Theme(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	s.mu.Lock()
	prompt := def.FollowUp(s.rand)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}
