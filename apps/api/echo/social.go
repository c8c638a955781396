package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/social"
)

func registerSocialAPI(g *echo.Group, api *schoolApi) {
	pg := g.Group("/posts", capabilityMiddleware(session.CapSocial))
	pg.GET("", api.timeline)
	pg.POST("", api.publishPost, capabilityMiddleware(session.CapSocialPost))
	pg.DELETE("/:id", api.removePost, capabilityMiddleware(session.CapSocialPost))
	pg.POST("/:id/like", api.likePost)
	pg.POST("/:id/comments", api.commentPost)
}

func (api *schoolApi) timeline(ctx echo.Context) error {
	posts, err := api.app.Social.Timeline()
	if err != nil {
		return errors.Wrap(err, "listing posts")
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *schoolApi) publishPost(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	var data social.NewPost
	if err := api.bindDraft(ctx, &data, "NewPost"); err != nil {
		return err
	}
	p, err := api.app.Social.Publish(id, data)
	if err != nil {
		return errors.Wrap(err, "publishing post")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *schoolApi) removePost(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Social.Remove(id))
}

func (api *schoolApi) likePost(ctx echo.Context) error {
	postID, err := paramID(ctx)
	if err != nil {
		return err
	}
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	p, err := api.app.Social.Like(postID, id)
	if err != nil {
		return errors.Wrap(err, "liking post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *schoolApi) commentPost(ctx echo.Context) error {
	postID, err := paramID(ctx)
	if err != nil {
		return err
	}
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	var data social.NewComment
	if err := api.bindDraft(ctx, &data, "NewComment"); err != nil {
		return err
	}
	p, err := api.app.Social.Comment(postID, id, data)
	if err != nil {
		return errors.Wrap(err, "commenting post")
	}
	return ctx.JSON(http.StatusCreated, p)
}
