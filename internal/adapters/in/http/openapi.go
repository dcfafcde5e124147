package http

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// rawBodyExtension marks operations whose body is checked by the importer
// rather than by the schema, so a bad payload is reported per record.
const rawBodyExtension = "x-raw-body"

// swaggerDoc serves the embedded document to echo-swagger.
type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

// loadSpec parses and checks openapi.yaml once and registers it as the
// swagger document.
var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render openapi spec: %w", err)
	}
	swag.Register(swag.Name, swaggerDoc(raw))

	return doc, nil
})

// requestValidator rejects requests that do not match the document before
// they reach a handler.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := router.FindRoute(req)
			switch {
			case errors.Is(err, routers.ErrPathNotFound):
				return echo.ErrNotFound
			case errors.Is(err, routers.ErrMethodNotAllowed):
				return echo.ErrMethodNotAllowed
			case err != nil:
				return err
			}

			_, raw := route.Operation.Extensions[rawBodyExtension]
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{ExcludeRequestBody: raw},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return rejected(ctx, err)
			}

			return next(ctx)
		}
	}, nil
}
