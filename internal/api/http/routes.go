package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-widget/internal/locations"
	"weather-widget/internal/widget"
)

var validate = validator.New()

// RegisterRoutes wires the widget HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, controller *widget.Controller) {
	v1 := app.Group("/api/v1")

	v1.Post("/widget/sessions", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(controller.CreateSession())
	})

	// Every keystroke in the city input lands here.
	v1.Get("/widget/:session/suggest", func(c *fiber.Ctx) error {
		view, err := controller.InputChanged(c.UserContext(), c.Params("session"), c.Query("q"))
		if errors.Is(err, widget.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			// Geocoding transport failure: the view already carries the
			// localized unavailable message.
			return c.Status(fiber.StatusBadGateway).JSON(view)
		}
		return c.JSON(view)
	})

	v1.Post("/widget/:session/select", func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := controller.Select(c.UserContext(), c.Params("session"), req.Index)
		switch {
		case errors.Is(err, widget.ErrSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, widget.ErrBadSelection):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to add location")
		}
		return c.JSON(view)
	})

	v1.Post("/widget/:session/dismiss", func(c *fiber.Ctx) error {
		view, err := controller.Dismiss(c.Params("session"))
		if errors.Is(err, widget.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(view)
	})

	v1.Post("/widget/:session/enter", func(c *fiber.Ctx) error {
		view, err := controller.EnterPressed(c.Params("session"))
		if errors.Is(err, widget.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(view)
	})

	v1.Get("/cards", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"cards": controller.Cards()})
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		controller.Reload(c.UserContext())
		return c.JSON(fiber.Map{"cards": controller.Cards()})
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"locations": controller.Locations()})
	})

	v1.Post("/locations", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		added, err := controller.AddLocation(c.UserContext(), req.toLocation())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to add location")
		}
		return c.JSON(fiber.Map{"added": added})
	})

	// Drops every tracked location and the persisted state key, so the
	// next startup runs the geolocation fallback again.
	v1.Delete("/locations", func(c *fiber.Ctx) error {
		if err := controller.ResetAll(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to reset locations")
		}
		return c.JSON(fiber.Map{"cards": controller.Cards()})
	})

	v1.Delete("/locations/:name", func(c *fiber.Ctx) error {
		// The path segment carries percent-encoded Cyrillic city names.
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid location name")
		}
		if err := controller.Delete(c.UserContext(), name); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete location")
		}
		return c.JSON(fiber.Map{"cards": controller.Cards()})
	})
}

// selectRequest identifies a suggestion by its index in the displayed
// list.
type selectRequest struct {
	Index int `json:"index" validate:"gte=0,lte=4"`
}

// locationRequest is a directly supplied tracked location.
type locationRequest struct {
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (r locationRequest) toLocation() locations.Location {
	return locations.Location{Name: r.Name, Lat: r.Lat, Lon: r.Lon}
}
