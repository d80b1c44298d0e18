package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/station-observations/internal/weather"
)

var validate = validator.New()

// legacyPrefix is the route prefix used by earlier releases of the API.
const legacyPrefix = "/SouthAustraliaWeatherObservation"

type handlers struct {
	service *weather.Service
	logger  *slog.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{service: service, logger: logger}

	v1 := app.Group("/api/v1")
	v1.Get("/observations", h.observationData)
	v1.Get("/observations/records", h.observationRecords)
	v1.Get("/observations/average-temperature", h.averageTemperature)

	legacy := app.Group(legacyPrefix)
	legacy.Get("/GetWeatherObservationData", h.observationData)
	legacy.Get("/GetWeatherObservationAverageTempature", h.averageTemperature)
}

func (h *handlers) observationData(c *fiber.Ctx) error {
	var q observationQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	records, err := h.service.GetObservationData(c.UserContext(), q.StationID)
	if err != nil {
		h.logger.Error("error in observation data handler", "station_id", q.label(), "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "An error occurred while processing the request.")
	}
	if len(records) == 0 {
		h.logger.Info("no record found", "station_id", q.label())
		return notFound(q)
	}

	projected := h.service.FilterFields(records, q.Field)
	if len(projected) == 0 {
		h.logger.Info("no matching fields found", "station_id", q.label(), "field", q.Field)
		return notFound(q)
	}

	return c.JSON(projected)
}

func (h *handlers) observationRecords(c *fiber.Ctx) error {
	var q observationQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	records, err := h.service.GetObservationData(c.UserContext(), q.StationID)
	if err != nil {
		h.logger.Error("error in observation records handler", "station_id", q.label(), "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "An error occurred while processing the request.")
	}
	if len(records) == 0 {
		return notFound(q)
	}

	return c.JSON(records)
}

func (h *handlers) averageTemperature(c *fiber.Ctx) error {
	var q observationQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	avg, err := h.service.GetAverageTemperature(c.UserContext(), q.StationID)
	if err != nil {
		h.logger.Error("error in average temperature handler", "station_id", q.label(), "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "An error occurred while processing the request.")
	}
	if avg == nil {
		h.logger.Info("no record found", "station_id", q.label())
		return notFound(q)
	}

	return c.JSON(avg)
}

func notFound(q observationQuery) error {
	return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("No record found for the Observation Station ID: %s", q.label()))
}

// observationQuery holds the query parameters shared by the observation endpoints.
type observationQuery struct {
	StationID *int
	Field     string `validate:"max=1024"`
}

func (q *observationQuery) bind(c *fiber.Ctx) error {
	if raw := strings.TrimSpace(c.Query("observationStationId")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return errors.New("observationStationId must be an integer")
		}
		q.StationID = &id
	}
	q.Field = c.Query("field")

	return validate.Struct(q)
}

// label renders the requested station for messages; empty when none was given.
func (q observationQuery) label() string {
	if q.StationID == nil {
		return ""
	}
	return strconv.Itoa(*q.StationID)
}
