package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/usecases"
)

// checkResultMap flattens a CheckResult for the default GraphQL resolvers,
// which do not descend into embedded structs.
func checkResultMap(res *domain.CheckResult) map[string]interface{} {
	m := map[string]interface{}{
		"distance_km": res.DistanceKm,
		"is_eligible": res.IsEligible,
		"origin":      res.Origin,
		"destination": res.Destination,
		"radius_km":   res.RadiusKm,
		"checked_at":  res.CheckedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if res.Campus != nil {
		m["campus"] = res.Campus
	}
	if res.Postcode != nil {
		m["postcode"] = res.Postcode
	}
	return m
}

// floatArg reads an optional Float argument.
func floatArg(args map[string]interface{}, name string, fallback float64) float64 {
	if v, ok := args[name].(float64); ok {
		return v
	}
	return fallback
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	campusType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Campus",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: geoPointType},
			"distance_km": &graphql.Field{Type: graphql.Float},
		},
	})

	postcodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Postcode",
		Fields: graphql.Fields{
			"postcode": &graphql.Field{Type: graphql.String},
			"place":    &graphql.Field{Type: graphql.String},
			"state":    &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: geoPointType},
		},
	})

	radiusType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RadiusOptions",
		Fields: graphql.Fields{
			"min":     &graphql.Field{Type: graphql.Float},
			"max":     &graphql.Field{Type: graphql.Float},
			"step":    &graphql.Field{Type: graphql.Float},
			"default": &graphql.Field{Type: graphql.Float},
			"options": &graphql.Field{Type: graphql.NewList(graphql.Float)},
		},
	})

	checkType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CheckResult",
		Fields: graphql.Fields{
			"distance_km": &graphql.Field{Type: graphql.Float},
			"is_eligible": &graphql.Field{Type: graphql.Boolean},
			"origin":      &graphql.Field{Type: geoPointType},
			"destination": &graphql.Field{Type: geoPointType},
			"radius_km":   &graphql.Field{Type: graphql.Float},
			"campus":      &graphql.Field{Type: campusType},
			"postcode":    &graphql.Field{Type: postcodeType},
			"checked_at":  &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"campuses": &graphql.Field{
				Type:        graphql.NewList(campusType),
				Description: "List all campuses",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Campuses.List(p.Context)
				},
			},
			"campus": &graphql.Field{
				Type:        campusType,
				Description: "Get a campus by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return deps.Campuses.Get(p.Context, id)
				},
			},
			"nearbyCampuses": &graphql.Field{
				Type:        graphql.NewList(campusType),
				Description: "Campuses within radiusKm of a point, nearest first",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radiusKm": &graphql.ArgumentConfig{Type: graphql.Float},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pt := domain.GeoPoint{Lat: floatArg(p.Args, "lat", 0), Lon: floatArg(p.Args, "lon", 0)}
					radius := floatArg(p.Args, "radiusKm", deps.Campuses.RadiusRange().Default)
					limit, _ := p.Args["limit"].(int)
					return deps.Campuses.Nearby(p.Context, pt, radius, limit)
				},
			},
			"radiusOptions": &graphql.Field{
				Type:        radiusType,
				Description: "Selectable radius values",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rng := deps.Campuses.RadiusRange()
					return map[string]interface{}{
						"min":     rng.Min,
						"max":     rng.Max,
						"step":    rng.Step,
						"default": rng.Default,
						"options": rng.Options(),
					}, nil
				},
			},
			"eligibility": &graphql.Field{
				Type:        checkType,
				Description: "Check a postcode against a campus",
				Args: graphql.FieldConfigArgument{
					"campus":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"postcode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"radiusKm": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					campus, _ := p.Args["campus"].(string)
					postcode, _ := p.Args["postcode"].(string)
					res, err := deps.Eligibility.Check(p.Context, usecases.CheckInput{
						CampusID: campus,
						Postcode: postcode,
						RadiusKm: floatArg(p.Args, "radiusKm", deps.Campuses.RadiusRange().Default),
					})
					if err != nil {
						return nil, err
					}
					return checkResultMap(res), nil
				},
			},
			"evaluate": &graphql.Field{
				Type:        checkType,
				Description: "Evaluate two explicit coordinates",
				Args: graphql.FieldConfigArgument{
					"originLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"originLon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"destLat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"destLon":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radiusKm":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin := domain.GeoPoint{Lat: floatArg(p.Args, "originLat", 0), Lon: floatArg(p.Args, "originLon", 0)}
					dest := domain.GeoPoint{Lat: floatArg(p.Args, "destLat", 0), Lon: floatArg(p.Args, "destLon", 0)}
					res, err := deps.Eligibility.Check(p.Context, usecases.CheckInput{
						Origin:      &origin,
						Destination: &dest,
						RadiusKm:    floatArg(p.Args, "radiusKm", 0),
					})
					if err != nil {
						return nil, err
					}
					return checkResultMap(res), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
