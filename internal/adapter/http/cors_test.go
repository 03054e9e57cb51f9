package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSPolicy_AnyOrigin(t *testing.T) {
	ctx := &app.RequestContext{}
	corsPolicy{}.apply(ctx)

	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, corsAllowMethods, string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")))
	assert.Equal(t, corsAllowHeaders, string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")))
	assert.Empty(t, string(ctx.Response.Header.Peek("Vary")))
}

func TestCORSPolicy_ListedOrigins(t *testing.T) {
	p := corsPolicy{origins: []string{"https://play.example.com"}}

	ctx := &app.RequestContext{}
	ctx.Request.Header.Set("Origin", "https://play.example.com")
	p.apply(ctx)
	assert.Equal(t, "https://play.example.com", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "Origin", string(ctx.Response.Header.Peek("Vary")))

	other := &app.RequestContext{}
	other.Request.Header.Set("Origin", "https://evil.example.com")
	p.apply(other)
	assert.Empty(t, string(other.Response.Header.Peek("Access-Control-Allow-Origin")))

	assert.Equal(t, "", p.allowOrigin(""))
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)

	corsMiddleware(nil)(context.Background(), ctx)

	require.Equal(t, consts.StatusNoContent, ctx.Response.StatusCode())
	require.True(t, ctx.IsAborted(), "expected preflight to abort the chain")
}
