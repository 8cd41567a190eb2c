package gql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	golog "github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

type Request struct {
	Query         string                 `json:"query" validate:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type handler struct {
	schema graphql.Schema
}

func (h *handler) execute(c echo.Context) error {
	ctx := c.Request().Context()

	// Clients commonly send extra keys like "extensions".
	c.Set("disallow_unknown_fields", false)
	req := Request{}
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	if result.HasErrors() {
		logger.FromEchoContext(c).Info("graphql request returned errors", golog.Data{
			"operation": req.OperationName,
			"errors":    len(result.Errors),
			"first":     result.Errors[0].Message,
		})
	}

	body, err := json.Marshal(result)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSONBlob(http.StatusOK, body))
}
