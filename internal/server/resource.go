package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

// resource binds one entity service into the shared route shape:
// POST /register, GET /all, GET /?id=, PATCH /update?id=,
// DELETE /delete?id=.
type resource[T any, C any, U any] struct {
	// path is the route segment, label the human name in messages.
	path  string
	label string

	create func(ctx context.Context, principal *auth.Principal, payload C) (T, error)
	update func(ctx context.Context, id uuid.UUID, payload U) (T, error)
	get    func(ctx context.Context, id uuid.UUID) (T, error)
	list   func(ctx context.Context, req repository.PageRequest) ([]T, int, error)
	remove func(ctx context.Context, id uuid.UUID) error

	// updateGuard lets one entity widen the update policy; the user
	// route adds the self-match exception here.
	updateGuard fiber.Handler
}

func adminOnly() fiber.Handler {
	return auth.RequireRoles([]model.UserRole{model.RoleAdmin})
}

func anyRole() fiber.Handler {
	return auth.RequireRoles(model.AllRoles())
}

func editors() fiber.Handler {
	return auth.RequireRoles([]model.UserRole{model.RoleAdmin, model.RoleEditor})
}

// mount registers the five routes. Creation and deletion are admin
// operations, reads are open to every role, updates to admins and
// editors unless the resource overrides the guard.
func mount[T any, C any, U any](router fiber.Router, res resource[T, C, U]) {
	updateGuard := res.updateGuard
	if updateGuard == nil {
		updateGuard = editors()
	}

	grp := router.Group("/" + res.path)
	grp.Post("/register", adminOnly(), res.handleCreate)
	grp.Get("/all", anyRole(), res.handleList)
	grp.Get("/", anyRole(), res.handleGet)
	grp.Patch("/update", updateGuard, res.handleUpdate)
	grp.Delete("/delete", adminOnly(), res.handleDelete)
}

func (res resource[T, C, U]) handleCreate(c *fiber.Ctx) error {
	var payload C
	if err := c.BodyParser(&payload); err != nil {
		return badBody(err)
	}

	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	record, err := res.create(c.UserContext(), principal, payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(EntityResponse[T]{
		Message: res.label + " created successfully",
		Data:    record,
	})
}

func (res resource[T, C, U]) handleGet(c *fiber.Ctx) error {
	id, err := idQuery(c)
	if err != nil {
		return err
	}

	record, err := res.get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(EntityResponse[T]{
		Message: res.label + " retrieved successfully",
		Data:    record,
	})
}

func (res resource[T, C, U]) handleList(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return err
	}

	records, total, err := res.list(c.UserContext(), q.request())
	if err != nil {
		return err
	}

	return c.JSON(GetAllResponse[T]{
		Message:  res.label + " list retrieved successfully",
		Data:     records,
		Metadata: q.metadata(total),
	})
}

func (res resource[T, C, U]) handleUpdate(c *fiber.Ctx) error {
	id, err := idQuery(c)
	if err != nil {
		return err
	}

	var payload U
	if err := c.BodyParser(&payload); err != nil {
		return badBody(err)
	}

	record, err := res.update(c.UserContext(), id, payload)
	if err != nil {
		return err
	}

	return c.JSON(EntityResponse[T]{
		Message: res.label + " updated successfully",
		Data:    record,
	})
}

func (res resource[T, C, U]) handleDelete(c *fiber.Ctx) error {
	id, err := idQuery(c)
	if err != nil {
		return err
	}

	if err := res.remove(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(DeleteResponse{
		Message: res.label + " deleted successfully",
	})
}
