package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"backoffice/config"
	"backoffice/interpreter"
	"backoffice/renderer"
)

// HandleReportInsights runs the dynamic report for a prompt and asks Gemini
// for a short executive reading of the resulting table.
func HandleReportInsights(c *fiber.Ctx) error {
	ctx := context.Background()

	prompt := strings.TrimSpace(c.Query("prompt"))
	if len([]rune(prompt)) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "La consulta debe tener al menos 10 caracteres",
		})
	}

	start := time.Now()
	intent := interpreter.Interpret(prompt)
	result, err := reportBuilder.Build(ctx, intent)
	recordHistory(c, prompt, intent, result, err, time.Since(start))
	if err != nil {
		log.Printf("❌ [INSIGHTS HANDLER] Error building report for prompt %q: %v", prompt, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo generar el reporte",
		})
	}

	report := renderer.RenderScreen(result, intent, time.Now())
	analysis, err := generateAnalysis(ctx, prompt, report.Title, result.Rows)
	if err != nil {
		log.Printf("❌ [INSIGHTS HANDLER] Error generating analysis: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo generar el análisis",
		})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"interpretacion": intent,
		"data": fiber.Map{
			"titulo":   report.Title,
			"analisis": analysis,
		},
	})
}

// generateAnalysis uses Gemini to create a human-readable analysis.
func generateAnalysis(ctx context.Context, originalPrompt, title string, data interface{}) (string, error) {
	apiKey := config.AppConfig.GeminiAPIKey
	if apiKey == "" {
		return "El análisis automático no está disponible: falta configurar la clave de Gemini.", nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro")

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize data: %w", err)
	}

	analysisPrompt := fmt.Sprintf(
		`Eres un analista de negocio para un back office de comercio. El usuario pidió: "%s". El reporte generado se titula "%s". Con base en los siguientes datos, entrega un análisis ejecutivo breve y accionable, en español:

		Datos: %s`,
		originalPrompt,
		title,
		string(jsonData),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(analysisPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	return fmt.Sprint(resp.Candidates[0].Content.Parts[0]), nil
}
