package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/BruksfildServices01/production-board/internal/config"
	"github.com/BruksfildServices01/production-board/internal/models"
)

const (
	sectionPre    = "(Pré-produção) "
	sectionDuring = "(Produção) "
	sectionPost   = "(Pós-produção) "
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models     contentGenerator
	textModel  string
	imageModel string
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Gemini{
		models:     client.Models,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
	}, nil
}

// ======================================================
// CHECKLIST
// ======================================================

type checklistSections struct {
	PreProducao []string `json:"pre_producao"`
	Producao    []string `json:"producao"`
	PosProducao []string `json:"pos_producao"`
}

var checklistSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"pre_producao": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"producao":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"pos_producao": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
}

func (g *Gemini) GenerateChecklist(ctx context.Context, title, brief string) []models.ChecklistItem {
	prompt := fmt.Sprintf(
		"Para um projeto de vídeo com o título %q e descrição %q, gere um checklist de produção. "+
			"Separe as tarefas em \"Pré-produção\", \"Produção\" e \"Pós-produção\". Retorne SOMENTE o JSON.",
		title, brief,
	)

	resp, err := g.models.GenerateContent(ctx, g.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   checklistSchema,
	})
	if err != nil {
		log.Printf("gemini checklist: %v", err)
		return []models.ChecklistItem{}
	}

	var sections checklistSections
	raw := strings.TrimSpace(responseText(resp))
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		log.Printf("gemini checklist: invalid json: %v", err)
		return []models.ChecklistItem{}
	}

	return ChecklistFromSections(sections.PreProducao, sections.Producao, sections.PosProducao)
}

// ChecklistFromSections prefixes each task with its production phase, in
// phase order.
func ChecklistFromSections(pre, during, post []string) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(pre)+len(during)+len(post))
	add := func(prefix string, tasks []string) {
		for _, t := range tasks {
			items = append(items, models.ChecklistItem{
				ID:   NewChecklistID(),
				Text: prefix + t,
			})
		}
	}
	add(sectionPre, pre)
	add(sectionDuring, during)
	add(sectionPost, post)
	return items
}

func NewChecklistID() string {
	return "check-" + uuid.NewString()
}

// ======================================================
// SCRIPT
// ======================================================

func (g *Gemini) GenerateScript(ctx context.Context, title, brief string) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva um roteiro curto para um vídeo com o título %q. A descrição do vídeo é: %q. "+
			"O roteiro deve ser conciso, direto e pronto para gravação. Formate com indicações de cena e diálogo.",
		title, brief,
	)

	resp, err := g.models.GenerateContent(ctx, g.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini script: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", fmt.Errorf("gemini script: empty response")
	}
	return text, nil
}

// ======================================================
// IMAGE
// ======================================================

func (g *Gemini) GenerateImage(ctx context.Context, title string) (*Image, error) {
	prompt := fmt.Sprintf(
		"Uma imagem de conceito cinematográfica para um vídeo chamado %q. Alta qualidade, arte digital, thumbnail para YouTube.",
		title,
	)

	resp, err := g.models.GenerateContent(ctx, g.imageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini image: %w", err)
	}

	for _, part := range firstParts(resp) {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
		}
	}
	return nil, ErrNoImage
}

// ------------------------------------------------------

func firstParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return nil
	}
	return c.Content.Parts
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, part := range firstParts(resp) {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

var (
	_ Generator = (*Gemini)(nil)
	_ Generator = Disabled{}
)
