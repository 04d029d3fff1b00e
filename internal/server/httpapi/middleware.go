package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// requireUser resolves the bearer token to a user id and stores it in the
// request context.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			return common.ErrUnauthorized
		}

		userID, err := s.users.Authenticate(token)
		if err != nil {
			s.logger.Debug(c.Request().Context(), "token rejected", "error", err)
			return common.ErrUnauthorized
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func currentUser(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		s.logger.Info(req.Context(), "request",
			"method", req.Method,
			"path", c.Path(),
			"status", res.Status,
			"duration", time.Since(start),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		)
		return nil
	}
}
