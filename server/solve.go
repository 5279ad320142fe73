package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/driftpath/astar"
	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/planner"
)

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	// Grid is the grid text, rows separated by newlines.
	Grid string `json:"grid" binding:"required"`
	// Variant is "direct", "round-trip" or "both"; empty uses the server default.
	Variant string `json:"variant"`
	// ReturnPath adds the route to every result.
	ReturnPath bool `json:"return_path"`
}

// ErrorResponse is the body of every non-2xx reply. Char, Row and Col are
// set when the grid contains an unexpected character.
type ErrorResponse struct {
	Error string `json:"error"`
	Char  string `json:"char,omitempty"`
	Row   *int   `json:"row,omitempty"`
	Col   *int   `json:"col,omitempty"`
}

func (s *Server) solve(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.cfg.MaxGridBytes))

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	g, err := grid.Parse(strings.NewReader(req.Grid))
	if err != nil {
		c.JSON(http.StatusBadRequest, gridError(err))
		return
	}

	sc := s.search
	if req.Variant != "" {
		sc.Variant = req.Variant
	}
	if req.ReturnPath {
		sc.ReturnPath = true
	}
	variants, err := sc.Variants()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	opts, err := sc.Options()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	p := planner.New(
		planner.WithLogger(s.logger),
		planner.WithSearchOptions(opts...),
	)
	rep, err := p.Solve(c.Request.Context(), g, variants...)
	if err != nil {
		status := solveStatus(err)
		s.logger.Warn("solve_failed",
			slog.String("error", err.Error()),
			slog.Int("status", status),
		)
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, rep.Summary())
}

// gridError builds the 400 body for a grid that failed to parse.
func gridError(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var mg *grid.MalformedGridError
	if errors.As(err, &mg) {
		row, col := mg.Row, mg.Col
		resp.Char = string(mg.Char)
		resp.Row = &row
		resp.Col = &col
	}

	return resp
}

// solveStatus maps planner and search failures to HTTP status codes.
func solveStatus(err error) int {
	switch {
	case errors.Is(err, astar.ErrExpansionLimit), errors.Is(err, astar.ErrSearchExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}
