package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pokeatlas/pokedex-api/pkg/api/helper/refid"
	"github.com/pokeatlas/pokedex-api/pkg/api/models"
	"github.com/pokeatlas/pokedex-api/pkg/api/services"
	"github.com/pokeatlas/pokedex-api/pkg/logging"
	"github.com/rs/zerolog"
)

type PokemonController struct {
	Pokedex *services.PokedexService
	logger  zerolog.Logger
}

func NewPokemonController(pokedex *services.PokedexService) *PokemonController {
	return &PokemonController{
		Pokedex: pokedex,
		logger:  logging.NewLogger("pokemon-handler"),
	}
}

// GET /api/pokemon?limit=...&offset=...
//
// Fetches one upstream page and maps every record through refid in upstream
// order. The batch is all-or-nothing: one bad record fails the whole
// request. Errors returned here render as a bare 500; the detail stays in
// the logs.
func (pc *PokemonController) ListPokemon(c *gin.Context, p *models.ListPokemonParams) ([]models.Pokemon, error) {
	page, err := pc.Pokedex.ListPokemon(c.Request.Context(), p.Limit, p.Offset)
	if err != nil {
		pc.logger.Error().
			Err(err).
			Uint32("limit", p.Limit).
			Uint32("offset", p.Offset).
			Str("request_id", c.GetString("request_id")).
			Msg("upstream fetch failed")
		return nil, err
	}

	pokemon := make([]models.Pokemon, 0, len(page.Results))
	for _, res := range page.Results {
		id, err := refid.Parse(res.URL)
		if err != nil {
			pc.logger.Error().
				Err(err).
				Str("url", res.URL).
				Str("name", res.Name).
				Str("request_id", c.GetString("request_id")).
				Msg("invalid reference URL in upstream response")
			return nil, err
		}
		pokemon = append(pokemon, models.Pokemon{ID: id, Name: res.Name})
	}

	return pokemon, nil
}
