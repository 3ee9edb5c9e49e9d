package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/delivery"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
)

type handler struct {
	sync       bid.SyncUseCase
	aggregator bid.AggregationUseCase
}

func New(e *echo.Echo, sync bid.SyncUseCase, aggregator bid.AggregationUseCase) {
	h := &handler{sync, aggregator}

	g := e.Group("/bids")
	g.GET("/token/:tokenId/current", h.getCurrentBid)
	g.GET("/token/:tokenId/minimum", h.getMinimumBid)
	g.POST("/token/:tokenId/validate", h.validateBid)
	g.GET("/user/:address", h.getAggregation)
	g.GET("/user/:address/made", h.getBidsMade)
	g.GET("/owner/:address/received", h.getBidsReceived)
	g.GET("/owner/:address/active", h.getActiveBidsReceived)
}

func parseTokenId(c echo.Context) (domain.TokenId, error) {
	id, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidNumberFormat
	}
	return domain.TokenId(id), nil
}

func (h *handler) getCurrentBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	tokenId, err := parseTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.sync.GetCurrentBidWithSync(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getMinimumBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	tokenId, err := parseTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	minimum, err := h.sync.GetMinimumBidAmount(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		MinimumBid decimal.Decimal `json:"minimumBid"`
	}{
		MinimumBid: minimum,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) validateBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	tokenId, err := parseTokenId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := struct {
		Amount string `json:"amount" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	res, err := h.sync.ValidateBidAmount(ctx, tokenId, amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type addressParams struct {
	Address string `param:"address" validate:"required,eth_addr"`
}

func (h *handler) getAggregation(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := addressParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res := h.aggregator.AggregateBidsForUser(ctx, domain.Address(p.Address))
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBidsMade(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := addressParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res := h.aggregator.GetBidsByUser(ctx, domain.Address(p.Address))
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBidsReceived(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := addressParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res := h.aggregator.GetAllBidsReceivedByOwner(ctx, domain.Address(p.Address))
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getActiveBidsReceived(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := addressParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res := h.aggregator.GetActiveBidsForOwner(ctx, domain.Address(p.Address))
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
