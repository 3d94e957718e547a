package http

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/usecases"
)

// queryFloat parses an optional float query parameter. ok is false when the
// parameter is absent.
func queryFloat(c *fiber.Ctx, name string) (v float64, ok bool, err error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return v, true, nil
}

// radiusParam reads radius_km, defaulting to the configured default.
func radiusParam(c *fiber.Ctx, deps *Dependencies) (float64, error) {
	r, ok, err := queryFloat(c, "radius_km")
	if err != nil {
		return 0, err
	}
	if !ok {
		return deps.Campuses.RadiusRange().Default, nil
	}
	return r, nil
}

// ListCampusesHandler returns the campus catalogue, paginated.
func ListCampusesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campuses, err := deps.Campuses.List(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}

		offset, limit := pageParams(c)
		page, pg := paginate(campuses, offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetCampusHandler returns one campus by ID.
func GetCampusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campus, err := deps.Campuses.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(campus)
	}
}

// NearbyCampusesHandler returns campuses within radius_km of lat/lon.
func NearbyCampusesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, okLat, err := queryFloat(c, "lat")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lon, okLon, err := queryFloat(c, "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if !okLat || !okLon {
			return errBadRequest(c, "lat and lon are required")
		}
		radius, err := radiusParam(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		campuses, err := deps.Campuses.Nearby(c.UserContext(),
			domain.GeoPoint{Lat: lat, Lon: lon}, radius, c.QueryInt("limit", 10))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(campuses)
	}
}

// RadiusOptionsResponse is the radius range plus its enumerated options.
type RadiusOptionsResponse struct {
	domain.RadiusRange
	Options []float64 `json:"options"`
}

// RadiusOptionsHandler returns the selectable radius values.
func RadiusOptionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rng := deps.Campuses.RadiusRange()
		return c.JSON(RadiusOptionsResponse{RadiusRange: rng, Options: rng.Options()})
	}
}

// EligibilityHandler checks ?postcode against ?campus within ?radius_km.
func EligibilityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campus := strings.TrimSpace(c.Query("campus"))
		if campus == "" {
			return errBadRequest(c, "campus query parameter is required")
		}
		postcode := strings.TrimSpace(c.Query("postcode"))
		if postcode == "" {
			return errBadRequest(c, "postcode query parameter is required")
		}
		radius, err := radiusParam(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		res, err := deps.Eligibility.Check(c.UserContext(), usecases.CheckInput{
			CampusID: campus,
			Postcode: postcode,
			RadiusKm: radius,
		})
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(res)
	}
}

// evaluateBody uses pointers so a missing point can be told apart from 0,0.
type evaluateBody struct {
	Origin      *domain.GeoPoint `json:"origin"`
	Destination *domain.GeoPoint `json:"destination"`
	RadiusKm    *float64         `json:"radius_km"`
}

// EvaluateHandler evaluates two explicit coordinates.
func EvaluateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body evaluateBody
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if body.Origin == nil || body.Destination == nil {
			return newError(c, fiber.StatusBadRequest, "invalid_location", "origin and destination are required")
		}
		radius := deps.Campuses.RadiusRange().Default
		if body.RadiusKm != nil {
			radius = *body.RadiusKm
		}

		res, err := deps.Eligibility.Check(c.UserContext(), usecases.CheckInput{
			Origin:      body.Origin,
			Destination: body.Destination,
			RadiusKm:    radius,
		})
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(res)
	}
}

// PostcodeHandler resolves a single postcode.
func PostcodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Postcodes == nil {
			return newError(c, fiber.StatusBadGateway, "upstream_error", "no postcode resolver configured")
		}
		pc, err := deps.Postcodes.Resolve(c.UserContext(), c.Params("code"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(pc)
	}
}

// ThemeHandler returns the configured map and page theme.
func ThemeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Theme)
	}
}
