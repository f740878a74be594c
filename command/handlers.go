// Package command exposes the checkout mutations as typed go-command
// handlers. Results travel back to the dispatcher through the context
// result collector.
package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-paypal-plus/core"
)

type CheckoutService interface {
	DoPaymentRequest(ctx context.Context, req core.CreatePaymentRequest) (core.CreatedPayment, error)
	ProcessPayment(ctx context.Context, req core.ExecutePaymentRequest) (core.ExecutionResult, error)
}

type ProfileService interface {
	Create(ctx context.Context) (core.ExperienceProfile, error)
	Delete(ctx context.Context, profileID string) error
}

type CreatePaymentCommand struct {
	service CheckoutService
}

func NewCreatePaymentCommand(service CheckoutService) *CreatePaymentCommand {
	return &CreatePaymentCommand{service: service}
}

func (c *CreatePaymentCommand) Execute(ctx context.Context, msg CreatePaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: checkout service is required")
	}
	out, err := c.service.DoPaymentRequest(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ExecutePaymentCommand struct {
	service CheckoutService
}

func NewExecutePaymentCommand(service CheckoutService) *ExecutePaymentCommand {
	return &ExecutePaymentCommand{service: service}
}

func (c *ExecutePaymentCommand) Execute(ctx context.Context, msg ExecutePaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: checkout service is required")
	}
	out, err := c.service.ProcessPayment(ctx, msg.Request)
	if err != nil {
		// The four-way status still reaches the caller on failure.
		storeResult(ctx, out)
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateWebProfileCommand struct {
	service ProfileService
}

func NewCreateWebProfileCommand(service ProfileService) *CreateWebProfileCommand {
	return &CreateWebProfileCommand{service: service}
}

func (c *CreateWebProfileCommand) Execute(ctx context.Context, msg CreateWebProfileMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: profile service is required")
	}
	out, err := c.service.Create(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteWebProfileCommand struct {
	service ProfileService
}

func NewDeleteWebProfileCommand(service ProfileService) *DeleteWebProfileCommand {
	return &DeleteWebProfileCommand{service: service}
}

func (c *DeleteWebProfileCommand) Execute(ctx context.Context, msg DeleteWebProfileMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: profile service is required")
	}
	return c.service.Delete(ctx, msg.ProfileID)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
