package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/existflow/angple/internal/mock"
	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/recommend"
)

const (
	maxLimit = 100
	// every page past this one is empty even at limit 1
	maxPage = mock.Total
)

func apiError(c echo.Context, status int, message, code string) error {
	return c.JSON(status, model.ErrorBody{Success: false, Error: message, Code: code})
}

func ok[T any](c echo.Context, data T) error {
	return c.JSON(http.StatusOK, model.Response[T]{Success: true, Data: data})
}

// queryInt reads a positive integer query parameter
func queryInt(c echo.Context, name string, def, max int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || (max > 0 && n > max) {
		return 0, errors.New(name + " must be a positive integer")
	}
	return n, nil
}

func paging(c echo.Context, defLimit int) (int, int, error) {
	page, err := queryInt(c, "page", 1, maxPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(c, "limit", defLimit, maxLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

// freeID parses a free-board id within the generated range
func freeID(c echo.Context) (string, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 || id > mock.Total {
		return "", false
	}
	return strconv.Itoa(id), true
}

func (s *Server) handleFreePosts(c echo.Context) error {
	page, limit, err := paging(c, 10)
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error(), "INVALID_PARAMETER")
	}
	return ok(c, s.gen.FreePosts(page, limit))
}

func (s *Server) handleFreePost(c echo.Context) error {
	id, found := freeID(c)
	if !found {
		return apiError(c, http.StatusNotFound, "post not found", "NOT_FOUND")
	}
	return ok(c, s.gen.FreePost(id))
}

func (s *Server) handleFreeComments(c echo.Context) error {
	if _, found := freeID(c); !found {
		return apiError(c, http.StatusNotFound, "post not found", "NOT_FOUND")
	}
	page, limit, err := paging(c, mock.DefaultCommentLimit)
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error(), "INVALID_PARAMETER")
	}
	return ok(c, s.gen.FreeComments(page, limit))
}

func (s *Server) handleMenus(c echo.Context) error {
	return ok(c, mock.Menus())
}

func (s *Server) handleAITrend(c echo.Context) error {
	period, err := recommend.ParsePeriod(c.Param("period"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err.Error(), "INVALID_PERIOD")
	}

	trend, err := mock.Trend(period)
	if err != nil {
		return apiError(c, http.StatusInternalServerError, err.Error(), "INTERNAL")
	}
	return ok(c, trend)
}
