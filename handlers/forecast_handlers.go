package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"backoffice/forecast"
)

// HandleTrainForecast rebuilds the sales forecast model from recent history
// and persists it. Training requests are serialized.
func HandleTrainForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	historyDays := c.QueryInt("dias", 365)
	if historyDays < forecast.MinHistoryDays {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "El rango de entrenamiento es demasiado corto",
		})
	}

	trainMu.Lock()
	defer trainMu.Unlock()

	samples, err := forecast.PrepareTrainingData(ctx, forecastSource, historyDays, time.Now())
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": "No hay suficientes datos históricos para entrenar el modelo",
			})
		}
		log.Printf("❌ [FORECAST HANDLER] Error preparing training data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo preparar los datos de entrenamiento",
		})
	}

	metrics, err := forecastModel.Train(samples)
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": "No hay suficientes datos históricos para entrenar el modelo",
			})
		}
		log.Printf("❌ [FORECAST HANDLER] Error training model: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No se pudo entrenar el modelo",
		})
	}

	log.Printf("✅ [FORECAST HANDLER] Model trained with %d samples, test R²=%.4f", len(samples), metrics.TestR2)
	return c.JSON(fiber.Map{"success": true, "data": metrics})
}

// HandleForecast predicts daily sales totals for the coming days. When the
// random forest model is unavailable it falls back to a moving average.
func HandleForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	daysAhead := c.QueryInt("dias", 7)
	if daysAhead < 1 {
		daysAhead = 1
	}
	if daysAhead > 90 {
		daysAhead = 90
	}

	// Predictions begin the day after startDate.
	startDate := time.Now()
	result, err := forecastModel.Predict(ctx, forecastSource, daysAhead, startDate)
	if err != nil {
		log.Printf("⚠️ [FORECAST HANDLER] Model prediction unavailable, falling back to moving average: %v", err)
		result, err = forecast.MovingAverage(ctx, forecastSource, daysAhead, startDate)
		if err != nil {
			log.Printf("❌ [FORECAST HANDLER] Error computing fallback prediction: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "No se pudo generar la predicción",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}
