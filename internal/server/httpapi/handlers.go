package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/labstack/echo/v4"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return err
	}

	u, err := s.users.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	s.logger.Info(c.Request().Context(), "Registered", "user_id", u.ID)
	return c.JSON(http.StatusCreated, struct{}{})
}

func (s *Server) login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return err
	}

	token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) profile(c echo.Context) error {
	u, err := s.users.Profile(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) listGoals(c echo.Context) error {
	list, err := s.goals.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) createGoal(c echo.Context) error {
	var g models.Goal
	if err := c.Bind(&g); err != nil {
		return err
	}
	created, err := s.goals.Create(c.Request().Context(), currentUser(c), g)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateGoal(c echo.Context) error {
	var g models.Goal
	if err := c.Bind(&g); err != nil {
		return err
	}
	updated, err := s.goals.Update(c.Request().Context(), currentUser(c), c.Param("id"), g)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteGoal(c echo.Context) error {
	if err := s.goals.Delete(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listWorkouts serves GET /workouts?userId=. The query must name the token's
// own user; an empty value means the same.
func (s *Server) listWorkouts(c echo.Context) error {
	userID := currentUser(c)
	if q := c.QueryParam("userId"); q != "" && q != userID {
		return errForbidden
	}

	list, err := s.workouts.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) createWorkout(c echo.Context) error {
	var w models.Workout
	if err := c.Bind(&w); err != nil {
		return err
	}
	created, err := s.workouts.Create(c.Request().Context(), currentUser(c), w)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateWorkout(c echo.Context) error {
	var w models.Workout
	if err := c.Bind(&w); err != nil {
		return err
	}
	updated, err := s.workouts.Update(c.Request().Context(), currentUser(c), c.Param("id"), w)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteWorkout(c echo.Context) error {
	if err := s.workouts.Delete(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
