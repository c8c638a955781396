package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/message"
	"github.com/trezcool/shule/core/session"
)

func registerMessageAPI(g *echo.Group, api *schoolApi) {
	mg := g.Group("/messages", capabilityMiddleware(session.CapCommunication))
	mg.GET("/inbox", api.inbox)
	mg.GET("/outbox", api.outbox)
	mg.POST("", api.sendMessage)
	mg.DELETE("/:id", api.removeMessage, roleMiddleware(session.Admin))
}

func (api *schoolApi) inbox(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	msgs, err := api.app.Messages.Inbox(id)
	if err != nil {
		return errors.Wrap(err, "listing inbox")
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *schoolApi) outbox(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	msgs, err := api.app.Messages.Outbox(id)
	if err != nil {
		return errors.Wrap(err, "listing outbox")
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *schoolApi) sendMessage(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	var data message.NewMessage
	if err := api.bindDraft(ctx, &data, "NewMessage"); err != nil {
		return err
	}
	msg, err := api.app.Messages.Send(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "sending message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *schoolApi) removeMessage(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Messages.Remove(id))
}
