package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/domain"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	api := app.Group("/api")

	api.Post("/users/signup", func(c *fiber.Ctx) error {
		var in service.SignupInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid payload"})
		}
		switch err := svcs.Auth.Signup(in); {
		case errors.Is(err, service.ErrAlreadyExists):
			return c.JSON(fiber.Map{"success": false, "message": "User already exists"})
		case errors.Is(err, service.ErrNoAdminForField):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No admin with this field ID"})
		case err != nil:
			log.Error().Err(err).Msg("signup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Post("/users/login", func(c *fiber.Ctx) error {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid payload"})
		}
		res, err := svcs.Auth.Login(in.Email, in.Password)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "User not found"})
		case errors.Is(err, service.ErrInvalidCredential):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid password"})
		case err != nil:
			log.Error().Err(err).Msg("login failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Login failed"})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"role":    res.Role,
			"fieldId": res.FieldID,
			"adminId": res.AdminID,
		})
	})

	api.Get("/users/farmers", func(c *fiber.Ctx) error {
		farmers, err := svcs.Repos.ListFarmers(c.Query("adminId"))
		if err != nil {
			log.Error().Err(err).Msg("farmer list failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching farmers"})
		}
		if farmers == nil {
			farmers = []domain.Account{}
		}
		return c.JSON(farmers)
	})

	api.Get("/water/status/:fieldId", func(c *fiber.Ctx) error {
		latest, err := svcs.Repos.LatestWaterFlow(c.Params("fieldId"))
		if err != nil {
			log.Error().Err(err).Msg("water status failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch water status"})
		}
		return c.JSON(latest)
	})

	// /canals/all must register before the :canalId route.
	api.Get("/canals/all", func(c *fiber.Ctx) error {
		canals, err := svcs.Repos.ListCanals(c.Query("adminId"))
		if err != nil {
			log.Error().Err(err).Msg("canal list failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch canal list"})
		}
		if canals == nil {
			canals = []string{}
		}
		return c.JSON(canals)
	})

	api.Get("/canals/:canalId/flow", func(c *fiber.Ctx) error {
		readings, err := svcs.Repos.ListCanalFlow(c.Params("canalId"), c.Query("adminId"))
		if err != nil {
			log.Error().Err(err).Msg("canal flow fetch failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch flow data"})
		}
		if readings == nil {
			readings = []domain.CanalFlowReading{}
		}
		return c.JSON(readings)
	})

	api.Post("/canals/flow", func(c *fiber.Ctx) error {
		var in struct {
			CanalID  string  `json:"canalId"`
			FlowRate float64 `json:"flowRate"`
			AdminID  string  `json:"adminId"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid payload"})
		}
		if err := svcs.Telemetry.RecordCanalFlow(in.CanalID, in.FlowRate, in.AdminID); err != nil {
			log.Error().Err(err).Msg("canal flow record failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Get("/rules", func(c *fiber.Ctx) error {
		rules, err := svcs.Repos.ListRules(c.Query("adminId"))
		if err != nil {
			log.Error().Err(err).Msg("rule list failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch rules"})
		}
		if rules == nil {
			rules = []domain.FlowRule{}
		}
		return c.JSON(rules)
	})

	api.Post("/rules", func(c *fiber.Ctx) error {
		var rule domain.FlowRule
		if err := c.BodyParser(&rule); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid payload"})
		}
		if err := svcs.Repos.InsertRule(&rule); err != nil {
			log.Error().Err(err).Msg("rule insert failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error saving rule"})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Delete("/rules/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid rule id"})
		}
		if err := svcs.Repos.DeleteRule(id); err != nil {
			log.Error().Err(err).Msg("rule delete failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Delete failed"})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Get("/notifications", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListNotifications(c.Query("adminId"))
		if err != nil {
			log.Error().Err(err).Msg("notification list failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load notifications"})
		}
		if items == nil {
			items = []domain.Notification{}
		}
		return c.JSON(items)
	})

	api.Get("/reports/flow", func(c *fiber.Ctx) error {
		url, err := svcs.Reports.FlowReport(c.Query("adminId"))
		if err != nil {
			log.Error().Err(err).Msg("flow report failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Report generation failed"})
		}
		return c.JSON(fiber.Map{"success": true, "url": url})
	})
}
