package graph

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"travelapp-backend/utils"
)

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string                 `json:"query" form:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables" form:"-"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// Handler executes GraphQL requests against schema with the caller placed by
// the auth middleware.
func Handler(schema graphql.Schema, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "graphql", "layer", "transport")

	return func(c *gin.Context) {
		var req Request
		var err error
		if c.Request.Method == http.MethodGet {
			err = c.ShouldBindQuery(&req)
			if raw := c.Query("variables"); err == nil && raw != "" {
				err = json.Unmarshal([]byte(raw), &req.Variables)
			}
		} else {
			err = c.ShouldBindJSON(&req)
		}
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Must provide query string.")
			return
		}

		ctx := utils.WithCaller(c.Request.Context(), utils.CurrentCaller(c))
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})
		if result.HasErrors() {
			logger.Debug("graphql request finished with errors", "event", "graphql.errors", "operation", req.OperationName, "errors", len(result.Errors))
		}
		c.JSON(http.StatusOK, result)
	}
}
