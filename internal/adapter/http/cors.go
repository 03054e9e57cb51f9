package httpadapter

import (
	"context"
	"slices"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	corsAllowMethods = "GET,POST,OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = "600"
)

// corsPolicy allows every origin when origins is empty. Otherwise only a
// listed origin is echoed back and other browsers get no allow header.
type corsPolicy struct {
	origins []string
}

func (p corsPolicy) allowOrigin(origin string) string {
	if len(p.origins) == 0 {
		return "*"
	}
	if origin != "" && slices.Contains(p.origins, origin) {
		return origin
	}
	return ""
}

func (p corsPolicy) apply(ctx *app.RequestContext) {
	allow := p.allowOrigin(string(ctx.Request.Header.Peek("Origin")))
	if allow == "" {
		return
	}
	if allow != "*" {
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", allow)
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", corsMaxAge)
}

func corsMiddleware(origins []string) app.HandlerFunc {
	p := corsPolicy{origins: origins}
	return func(c context.Context, ctx *app.RequestContext) {
		p.apply(ctx)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
