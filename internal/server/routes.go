package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/service"
)

func (s *Server) registerRoutes(router fiber.Router, services *service.Services, authenticator *auth.Authenticator) {
	router.Get("/ping", handlePing)
	router.Post("/login", handleLogin(authenticator))
	router.Get("/utils/country", handleCountries)

	mount(router, resource[*model.User, service.CreateUserPayload, service.UpdateUserPayload]{
		path:  "user",
		label: "User",
		create: func(ctx context.Context, _ *auth.Principal, p service.CreateUserPayload) (*model.User, error) {
			return services.Users.Create(ctx, p)
		},
		update: services.Users.Update,
		get:    services.Users.Get,
		list:   services.Users.List,
		remove: services.Users.Delete,
		// Users may edit their own record regardless of role.
		updateGuard: auth.RequireRoles(
			[]model.UserRole{model.RoleAdmin, model.RoleEditor},
			auth.WithSelfMatch("id"),
		),
	})

	mount(router, resource[*model.Customer, service.CreateCustomerPayload, service.UpdateCustomerPayload]{
		path:  "customer",
		label: "Customer",
		create: func(ctx context.Context, _ *auth.Principal, p service.CreateCustomerPayload) (*model.Customer, error) {
			return services.Customers.Create(ctx, p)
		},
		update: services.Customers.Update,
		get:    services.Customers.Get,
		list:   services.Customers.List,
		remove: services.Customers.Delete,
	})

	mount(router, resource[*model.Mold, service.CreateMoldPayload, service.UpdateMoldPayload]{
		path:  "mold",
		label: "Mold",
		create: func(ctx context.Context, principal *auth.Principal, p service.CreateMoldPayload) (*model.Mold, error) {
			createdBy := uuid.Nil
			if principal != nil {
				createdBy = principal.ID
			}
			return services.Molds.Create(ctx, p, createdBy)
		},
		update: services.Molds.Update,
		get:    services.Molds.Get,
		list:   services.Molds.List,
		remove: services.Molds.Delete,
	})

	mount(router, resource[*model.Part, service.CreatePartPayload, service.UpdatePartPayload]{
		path:  "part",
		label: "Part",
		create: func(ctx context.Context, _ *auth.Principal, p service.CreatePartPayload) (*model.Part, error) {
			return services.Parts.Create(ctx, p)
		},
		update: services.Parts.Update,
		get:    services.Parts.Get,
		list:   services.Parts.List,
		remove: services.Parts.Delete,
	})

	mount(router, resource[*model.Material, service.CreateMaterialPayload, service.UpdateMaterialPayload]{
		path:  "material",
		label: "Material",
		create: func(ctx context.Context, _ *auth.Principal, p service.CreateMaterialPayload) (*model.Material, error) {
			return services.Materials.Create(ctx, p)
		},
		update: services.Materials.Update,
		get:    services.Materials.Get,
		list:   services.Materials.List,
		remove: services.Materials.Delete,
	})

	mount(router, resource[*model.Machine, service.CreateMachinePayload, service.UpdateMachinePayload]{
		path:  "machine",
		label: "Machine",
		create: func(ctx context.Context, _ *auth.Principal, p service.CreateMachinePayload) (*model.Machine, error) {
			return services.Machines.Create(ctx, p)
		},
		update: services.Machines.Update,
		get:    services.Machines.Get,
		list:   services.Machines.List,
		remove: services.Machines.Delete,
	})

	mount(router, resource[*model.Operation, service.CreateOperationPayload, service.UpdateOperationPayload]{
		path:  "operation",
		label: "Operation",
		create: func(ctx context.Context, _ *auth.Principal, p service.CreateOperationPayload) (*model.Operation, error) {
			return services.Operations.Create(ctx, p)
		},
		update: services.Operations.Update,
		get:    services.Operations.Get,
		list:   services.Operations.List,
		remove: services.Operations.Delete,
	})
}
