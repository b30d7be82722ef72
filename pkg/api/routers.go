package api

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/pokeatlas/pokedex-api/pkg/api/handler"
	"github.com/pokeatlas/pokedex-api/pkg/api/helper/problem"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var apiVersionHeader = fizz.Header(
	"API-Version",
	"The API version of the response",
	"",
)

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		var bindErr tonic.BindError
		if errors.As(err, &bindErr) {
			c.Header("Content-Type", "application/problem+json")
			p := problem.NewBadRequest(c.Request.URL.Path, bindErr.Error())
			return p.Status, p
		}

		if apiErr, ok := err.(problem.APIError); ok {
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// Everything else surfaces as a bare 500; nil payload renders an
		// empty body, detail stays in the logs.
		return http.StatusInternalServerError, nil
	})
}

func NewRouter(apiVersion string, controller *handler.PokemonController) *fizz.Fizz {
	gin.SetMode(gin.ReleaseMode)
	g := gin.Default()

	// Configure CORS to allow access from everywhere
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "API-Version", "X-Request-ID"}
	config.ExposeHeaders = []string{"API-Version", "X-Request-ID"}
	g.Use(cors.New(config))

	g.Use(RequestIDMiddleware())
	g.Use(APIVersionMiddleware(apiVersion))

	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Pokedex API",
		Description: "Read-only gateway over the PokeAPI pokemon list.",
		Version:     apiVersion,
	}

	root := f.Group("/api", "Pokemon", "Pokemon list routes")

	// GET /api/pokemon
	root.GET("/pokemon",
		[]fizz.OperationOption{
			fizz.ID("listPokemon"),
			fizz.Summary("List pokemon"),
			fizz.Description("Fetches one page of pokemon from the upstream API and returns their numeric ids and names."),
			apiVersionHeader,
		},
		tonic.Handler(controller.ListPokemon, 200),
	)

	// OpenAPI document + documentation UI
	f.GET("/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))
	g.GET("/", docsPage)

	g.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	g.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g.NoRoute(func(c *gin.Context) {
		c.Header("Content-Type", "application/problem+json")
		c.JSON(http.StatusNotFound, problem.NewNotFound(c.Request.URL.Path, "no such route"))
	})

	return f
}

const docsHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Pokedex API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({ url: "/openapi.json", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

func docsPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsHTML))
}

// RequestIDMiddleware echoes an inbound X-Request-ID or generates one, and
// exposes it to handlers for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
