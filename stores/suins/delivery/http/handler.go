package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/delivery"
	"github.com/x-xyz/suinsapi/domain"
	"github.com/x-xyz/suinsapi/domain/suins"
	"github.com/x-xyz/suinsapi/service/query"
)

const defaultWaitTimeout = 5 * time.Second

type handler struct {
	suins       suins.Usecase
	waitTimeout time.Duration
}

// LookupResp is the state of one lookup when the request stopped waiting.
type LookupResp struct {
	State string      `json:"state"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

func New(e *echo.Echo, uc suins.Usecase, waitTimeout time.Duration) {
	if waitTimeout <= 0 {
		waitTimeout = defaultWaitTimeout
	}
	h := &handler{
		suins:       uc,
		waitTimeout: waitTimeout,
	}

	g := e.Group("/suins")

	g.GET("/enabled", h.enabled)
	g.GET("/check/:name", h.check)
	g.GET("/resolve/:name", h.resolve)
	g.GET("/reverse-resolve/:address", h.reverseResolve)
	g.POST("/reverse-resolve", h.batchReverseResolve)
	g.POST("/invalidate", h.invalidate)
}

// @Summary      Whether SuiNS lookups are enabled
// @Tags         suins
// @Produce      json
// @Success      200  {object}  delivery.JsonResponse
// @Router       /suins/enabled [get]
func (h *handler) enabled(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]bool{
		"enabled": h.suins.IsEnabled(),
	})
}

// @Summary      Whether name ends with a SuiNS domain
// @Tags         suins
// @Produce      json
// @Param        name  path  string  true  "name"
// @Success      200  {object}  delivery.JsonResponse
// @Router       /suins/check/{name} [get]
func (h *handler) check(c echo.Context) error {
	name := c.Param("name")
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"name":  name,
		"valid": suins.IsSuiNSName(name),
	})
}

// @Summary      Resolve a SuiNS name to its address
// @Tags         suins
// @Produce      json
// @Param        name  path  string  true  "name, e.g. alice.sui"
// @Success      200  {object}  delivery.JsonResponse
// @Success      202  {object}  delivery.JsonResponse
// @Failure      400  {object}  delivery.JsonResponse
// @Failure      502  {object}  delivery.JsonResponse
// @Router       /suins/resolve/{name} [get]
func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name string `param:"name" validate:"required,suinsname"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidName)
	}

	o := h.suins.ResolveAddress(ctx, p.Name)
	defer o.Close()
	return h.respond(c, ctx, o)
}

// @Summary      Resolve an address to its default SuiNS name
// @Tags         suins
// @Produce      json
// @Param        address  path  string  true  "sui address"
// @Success      200  {object}  delivery.JsonResponse
// @Success      202  {object}  delivery.JsonResponse
// @Failure      400  {object}  delivery.JsonResponse
// @Failure      502  {object}  delivery.JsonResponse
// @Router       /suins/reverse-resolve/{address} [get]
func (h *handler) reverseResolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Address domain.Address `param:"address" validate:"required,suiaddress"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	o := h.suins.ResolveName(ctx, p.Address)
	defer o.Close()
	return h.respond(c, ctx, o)
}

// @Summary      Resolve many addresses to their default SuiNS names
// @Tags         suins
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{\"addresses\": [\"0x...\"]}"
// @Success      200  {object}  delivery.JsonResponse
// @Failure      400  {object}  delivery.JsonResponse
// @Failure      403  {object}  delivery.JsonResponse
// @Failure      502  {object}  delivery.JsonResponse
// @Router       /suins/reverse-resolve [post]
func (h *handler) batchReverseResolve(c echo.Context) error {
	cont := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Addresses []domain.Address `json:"addresses" validate:"required,max=50,dive,suiaddress"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	wctx, cancel := ctx.WithTimeout(cont, h.waitTimeout)
	defer cancel()
	names, err := h.suins.ResolveNames(wctx, p.Addresses)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadGateway, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, names)
}

// @Summary      Drop a cached lookup
// @Tags         suins
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{\"tag\": \"resolve-suins-address\", \"input\": \"alice.sui\"}"
// @Success      200  {object}  delivery.JsonResponse
// @Failure      400  {object}  delivery.JsonResponse
// @Router       /suins/invalidate [post]
func (h *handler) invalidate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Tag   string `json:"tag" validate:"required,oneof=resolve-suins-address resolve-suins-name"`
		Input string `json:"input" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := h.suins.Invalidate(ctx, p.Tag, p.Input); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) respond(c echo.Context, cont ctx.Ctx, o query.Observer) error {
	wctx, cancel := ctx.WithTimeout(cont, h.waitTimeout)
	defer cancel()

	// a timeout leaves the state pending, which is answered with 202
	st, _ := o.Wait(wctx)

	resp := LookupResp{
		State: st.Status.String(),
		Data:  st.Data,
	}
	switch st.Status {
	case query.StatusPending:
		return delivery.MakeJsonResp(c, http.StatusAccepted, resp)
	case query.StatusError:
		if st.Err != nil {
			resp.Error = st.Err.Error()
		}
		return delivery.MakeJsonResp(c, http.StatusBadGateway, resp)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, resp)
}
