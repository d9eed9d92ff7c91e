package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"backoffice/interpreter"
	"backoffice/models"
	"backoffice/renderer"
	"backoffice/utils"
)

// HandleDynamicReport interprets a natural language prompt, runs the
// resulting query and returns the report in the requested format.
func HandleDynamicReport(c *fiber.Ctx) error {
	ctx := context.Background()

	prompt := strings.TrimSpace(c.Query("prompt"))
	if len([]rune(prompt)) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "La consulta debe tener al menos 10 caracteres",
		})
	}

	// An explicit formato parameter wins over whatever the prompt says.
	// Validated up front so a bad override never consumes an attempt.
	override := models.OutputFormat(strings.ToLower(strings.TrimSpace(c.Query("formato"))))
	switch override {
	case "", models.FormatScreen, models.FormatPDF, models.FormatExcel, models.FormatCSV:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Formato no soportado: " + string(override),
		})
	}

	start := time.Now()
	intent := interpreter.Interpret(prompt)
	if override != "" {
		intent.Format = override
	}

	result, err := reportBuilder.Build(ctx, intent)
	recordHistory(c, prompt, intent, result, err, time.Since(start))
	if err != nil {
		log.Printf("❌ [REPORT HANDLER] Error building report for prompt %q: %v", prompt, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo generar el reporte",
		})
	}

	now := time.Now()
	if intent.Format == models.FormatScreen {
		return c.JSON(fiber.Map{
			"success":        true,
			"interpretacion": intent,
			"data":           renderer.RenderScreen(result, intent, now),
		})
	}

	doc, err := renderer.Render(result, intent, intent.Format, now)
	if err != nil {
		log.Printf("❌ [REPORT HANDLER] Error rendering %s for prompt %q: %v", intent.Format, prompt, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo generar el archivo del reporte",
		})
	}

	dataURI := "data:" + doc.ContentType + ";base64," + base64.StdEncoding.EncodeToString(doc.Bytes)
	return c.JSON(fiber.Map{
		"success":        true,
		"interpretacion": intent,
		"data": fiber.Map{
			"archivo":      dataURI,
			"filename":     doc.Filename,
			"content_type": doc.ContentType,
			"formato":      intent.Format,
		},
	})
}

// HandleReportHistory lists recent prompt interpretations, newest first.
func HandleReportHistory(c *fiber.Ctx) error {
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("limit", 10)
	pagination := utils.CreatePagination(0, page, pageSize)

	entries, total, err := historyStore.Recent(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("❌ [HISTORY HANDLER] Error listing query history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo obtener el historial de consultas",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       entries,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}

// recordHistory writes the audit entry for one interpretation attempt.
// Failures are logged and swallowed so auditing never breaks a report.
func recordHistory(c *fiber.Ctx, prompt string, intent models.QueryIntent, result models.QueryResult, buildErr error, elapsed time.Duration) {
	if historyStore == nil {
		return
	}

	entry := models.QueryHistoryEntry{
		Prompt:          prompt,
		Intent:          intentJSONB(intent),
		DurationSeconds: elapsed.Seconds(),
	}
	if userID, ok := c.Locals("userID").(string); ok {
		entry.UserID = userID
	}
	if buildErr != nil {
		entry.Error = buildErr.Error()
	} else {
		entry.ResultKind = result.Kind
		entry.ResultRows = len(result.Rows)
	}

	if err := historyStore.Record(context.Background(), entry); err != nil {
		log.Printf("⚠️ [HISTORY HANDLER] Error recording query history: %v", err)
	}
}

func intentJSONB(intent models.QueryIntent) models.JSONB {
	raw, err := json.Marshal(intent)
	if err != nil {
		return models.JSONB{}
	}
	var m models.JSONB
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.JSONB{}
	}
	return m
}
