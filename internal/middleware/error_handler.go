package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/dcd-pricer/internal/convention"
	"github.com/anyulbade/dcd-pricer/internal/pricing"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// MapError turns a handler error into a status and body. Pricing errors are
// client errors; anything unrecognised is logged and hidden behind a 500.
func MapError(err error) (int, ErrorResponse) {
	var inputErr *pricing.InputValidationError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid input",
			Field:   inputErr.Field,
			Details: inputErr.Message,
		}
	}

	var lookupErr *convention.LookupError
	if errors.As(err, &lookupErr) {
		return http.StatusBadRequest, ErrorResponse{
			Error:   "unsupported currency pair",
			Field:   "currency_pair",
			Details: lookupErr.Error(),
		}
	}

	var failure *pricing.PricingFailure
	if errors.As(err, &failure) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "pricing failed",
			Field:   failure.Param,
			Details: failure.Reason,
		}
	}

	return MapDBError(err)
}

func MapDBError(err error) (int, ErrorResponse) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		case "22P02": // invalid_text_representation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "malformed identifier",
				Details: pgErr.Message,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
