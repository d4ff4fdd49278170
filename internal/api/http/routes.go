package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/stepanukha/Weather-App/internal/advisor"
	"github.com/stepanukha/Weather-App/internal/location"
	"github.com/stepanukha/Weather-App/internal/store"
)

var validate = validator.New()

// adviseTimeout bounds one recommendation, including every retry against
// the geo and weather collaborators.
const adviseTimeout = 25 * time.Second

// Advisor builds recommendations; *advisor.Service satisfies it.
type Advisor interface {
	Advise(ctx context.Context, req advisor.Request) (advisor.Report, error)
}

// Reports reads stored briefings; *store.MemoryStore satisfies it.
type Reports interface {
	Latest(place string) (advisor.Report, error)
	Range(place string, from, to time.Time) ([]advisor.Report, error)
	Places() []string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Advisor, reports Reports, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handlers{svc: svc, reports: reports, logger: logger.Named("http"), timeout: adviseTimeout}

	v1 := app.Group("/api/v1")
	v1.Get("/recommendation", h.recommendationQuery)
	v1.Post("/recommendation", h.recommendationBody)
	v1.Get("/briefings", h.latestBriefings)
	v1.Get("/briefings/:name", h.briefingHistory)
}

// ErrorHandler renders every error as {"success": false, "error": msg}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

type handlers struct {
	svc     Advisor
	reports Reports
	logger  *zap.Logger
	timeout time.Duration
}

// recommendationRequest is the POST body and the parsed GET query.
type recommendationRequest struct {
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	PostalCode  string   `json:"postal_code" validate:"max=16"`
	CountryCode string   `json:"country_code" validate:"omitempty,iso3166_1_alpha2"`
}

func (r recommendationRequest) check() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.PostalCode != "" && strings.TrimSpace(r.PostalCode) == "" {
		return errors.New("postal_code must not be blank")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return errors.New("latitude and longitude must be given together")
	}
	return nil
}

func (r recommendationRequest) toAdvisor() advisor.Request {
	return advisor.Request{
		PostalCode:  strings.TrimSpace(r.PostalCode),
		CountryCode: r.CountryCode,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

func (h *handlers) recommendationQuery(c *fiber.Ctx) error {
	var req recommendationRequest

	lat, err := optionalFloat(c.Query("lat"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
	}
	lon, err := optionalFloat(c.Query("lon"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "lon must be a number")
	}
	req.Latitude = lat
	req.Longitude = lon
	req.PostalCode = c.Query("zip")
	req.CountryCode = c.Query("country")

	return h.recommend(c, req)
}

func (h *handlers) recommendationBody(c *fiber.Ctx) error {
	var req recommendationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}
	}
	return h.recommend(c, req)
}

func (h *handlers) recommend(c *fiber.Ctx, req recommendationRequest) error {
	req.CountryCode = strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if err := req.check(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	report, err := h.svc.Advise(ctx, req.toAdvisor())
	if err != nil {
		return h.adviseError(err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"id":             report.ID,
		"location":       report.Location,
		"tier":           report.Tier,
		"weather":        report.Summary,
		"recommendation": report.Recommendation,
	})
}

func (h *handlers) adviseError(err error) error {
	var notFound *location.NotFoundError
	switch {
	case errors.Is(err, advisor.ErrInvalidRequest):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		return fiber.NewError(fiber.StatusNotFound, notFound.Reason)
	default:
		h.logger.Warn("recommendation failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, advisor.ErrRecommendationUnavailable.Error())
	}
}

func (h *handlers) latestBriefings(c *fiber.Ctx) error {
	places := h.reports.Places()
	briefings := make(map[string]advisor.Report, len(places))
	for _, place := range places {
		report, err := h.reports.Latest(place)
		if err != nil {
			continue
		}
		briefings[place] = report
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"briefings": briefings,
	})
}

func (h *handlers) briefingHistory(c *fiber.Ctx) error {
	name := c.Params("name")

	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	reports, err := h.reports.Range(name, req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no briefings for "+name+" in requested range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read briefings")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"place":   name,
		"from":    req.From,
		"to":      req.To,
		"reports": reports,
	})
}

// historyQuery holds query parameters for the history endpoint. Missing
// bounds cover all time.
type historyQuery struct {
	From time.Time
	To   time.Time `validate:"gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.From = time.Unix(0, 0).UTC()
	h.To = time.Now().UTC()

	if s := c.Query("from"); s != "" {
		from, err := parseTime(s)
		if err != nil {
			return err
		}
		h.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := parseTime(s)
		if err != nil {
			return err
		}
		h.To = to
	}
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
