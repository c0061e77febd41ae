package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jambotours/jambo-go/internal/domain"
	redisrepo "github.com/jambotours/jambo-go/internal/repository/redis"
	"github.com/jambotours/jambo-go/internal/service"
	"github.com/jambotours/jambo-go/internal/service/availability"
	"github.com/jambotours/jambo-go/internal/service/holds"
	"github.com/jambotours/jambo-go/internal/service/inventory"
	"github.com/jambotours/jambo-go/internal/service/query"
)

// IdemStore replays hold-creating check responses for repeated
// Idempotency-Key requests.
type IdemStore interface {
	AcquireLock(ctx context.Context, key string, lockTTL time.Duration) (bool, error)
	SaveResult(ctx context.Context, key string, jsonPayload string) error
	GetResult(ctx context.Context, key string) (string, bool, error)
	Release(ctx context.Context, key string) error
}

func NewRouter(
	svcs *service.Services,
	idem IdemStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public browse API
	r.GET("/resources/:id", handleGetResource(svcs))
	r.GET("/resources/:id/calendar", handleGetCalendar(svcs))
	r.GET("/bookings/:id", handleGetBooking(svcs))

	// Availability & hold engine
	r.POST("/availability/check", handleCheck(svcs, idem))
	r.POST("/availability/confirm", handleConfirm(svcs))
	r.POST("/availability/release", handleRelease(svcs))

	// Admin API
	// TODO: add admin middleware once the auth service exposes role claims
	admin := r.Group("/availability/admin")
	{
		admin.POST("/resources", handleCreateResource(svcs))
		admin.POST("/resources/:id/pricing-units", handleCreatePricingUnit(svcs))
		admin.POST("/inventory/upsert", handleUpsertInventory(svcs))
		admin.POST("/inventory/generate-range", handleGenerateRange(svcs))
		admin.POST("/blocked-dates", handleBlockDate(svcs))
		admin.DELETE("/blocked-dates", handleUnblockDate(svcs))
		admin.POST("/holds/expire", handleExpireHolds(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Get resource summary with pricing units
// @Param    id  path  string  true  "Resource ID (uuid)"
// @Success  200  {object}  query.ResourceSummary
// @Failure  404  {object}  ErrorResponse
// @Router   /resources/{id} [get]
func handleGetResource(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		summary, err := svcs.Query.GetResource(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, summary, "public, max-age=60", true)
	}
}

// @Summary  Get availability calendar
// @Param    id    path   string  true  "Resource ID (uuid)"
// @Param    from  query  string  true  "YYYY-MM-DD"
// @Param    to    query  string  true  "YYYY-MM-DD"
// @Success  200  {array}  query.DayAvailability
// @Router   /resources/{id}/calendar [get]
func handleGetCalendar(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		from, err := domain.ParseDateOnly(c.Query("from"))
		if err != nil {
			badRequest(c, "invalid from (YYYY-MM-DD)")
			return
		}
		to, err := domain.ParseDateOnly(c.Query("to"))
		if err != nil {
			badRequest(c, "invalid to (YYYY-MM-DD)")
			return
		}
		cal, err := svcs.Query.Calendar(c.Request.Context(), id, from, to)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, cal, "public, max-age=15", true)
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200  {object}  BookingView
// @Failure  404  {object}  ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		b, err := svcs.Holds.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingView(b))
	}
}

// @Summary  Check availability, optionally creating a hold (idempotent)
// @Param    req body  CheckRequest true "payload"
// @Header   200 {string} Idempotency-Key "echo"
// @Success  200 {object} CheckResponse
// @Failure  400 {object} ErrorResponse
// @Failure  429 {object} ErrorResponse "rate limited"
// @Failure  503 {object} ErrorResponse "transaction conflict"
// @Router   /availability/check [post]
func handleCheck(svcs *service.Services, idem IdemStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		in, ok := buildCheckInput(c, &req)
		if !ok {
			return
		}

		// Idempotent replay only matters when a hold would be created.
		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && req.CreateHold && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemHold(in.ResourceID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		in.RateKey = "ip:" + c.ClientIP()

		res, err := svcs.Availability.Check(c.Request.Context(), in)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := toCheckResponse(res)

		if idemStorageKey != "" && idem != nil {
			// The plaintext token never reaches the store: a replayed response
			// proves the hold exists via bookingId, only the first response
			// carries the token.
			stored := resp
			stored.HoldToken = ""
			b, _ := json.Marshal(stored)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Confirm a hold
// @Param    req body  ConfirmRequest true "payload"
// @Success  200 {object} ConfirmResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "expired or already confirmed"
// @Router   /availability/confirm [post]
func handleConfirm(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ref, ok := buildHoldRef(c, req.BookingID, req.HoldToken)
		if !ok {
			return
		}

		var paymentRef string
		if req.PaymentInfo != nil {
			paymentRef = req.PaymentInfo.Reference
		}

		b, err := svcs.Holds.Confirm(c.Request.Context(), ref, paymentRef)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ConfirmResponse{Success: true, Booking: toBookingView(b)})
	}
}

// @Summary  Release a hold (best-effort)
// @Param    req body  ReleaseRequest true "payload"
// @Success  200 {object} ReleaseResponse
// @Router   /availability/release [post]
func handleRelease(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReleaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ref, ok := buildHoldRef(c, req.BookingID, req.HoldToken)
		if !ok {
			return
		}

		released, err := svcs.Holds.Release(c.Request.Context(), ref)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ReleaseResponse{Released: released})
	}
}

// @Summary  Create resource
// @Param    req body  CreateResourceRequest true "payload"
// @Success  201 {object} CreateResourceResponse
// @Router   /availability/admin/resources [post]
func handleCreateResource(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Inventory.CreateResource(
			c.Request.Context(),
			domain.ResourceKind(req.Kind),
			req.Name,
			req.Currency,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateResourceResponse{ResourceID: id.String()})
	}
}

// @Summary  Create pricing unit
// @Param    id  path  string  true  "Resource ID (uuid)"
// @Param    req body  CreatePricingUnitRequest true "payload"
// @Success  201 {object} CreatePricingUnitResponse
// @Router   /availability/admin/resources/{id}/pricing-units [post]
func handleCreatePricingUnit(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req CreatePricingUnitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Inventory.CreatePricingUnit(c.Request.Context(), domain.PricingUnit{
			ResourceID:     resourceID,
			Name:           req.Name,
			MinGuests:      req.MinGuests,
			MaxGuests:      req.MaxGuests,
			MaxInfants:     req.MaxInfants,
			MaxRooms:       req.MaxRooms,
			PriceFromCents: req.PriceFrom,
			PriceModel:     domain.PriceModel(req.PriceModel),
			Currency:       req.Currency,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatePricingUnitResponse{DurationOptionID: id.String()})
	}
}

// @Summary  Upsert per-date capacity (idempotent)
// @Param    req body  UpsertInventoryRequest true "payload"
// @Success  200 {object} InventoryResponse
// @Router   /availability/admin/inventory/upsert [post]
func handleUpsertInventory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertInventoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		resourceID, ok := resolveResourceID(c, req.DestinationID, req.ExperienceID)
		if !ok {
			return
		}

		unitID, ok := parseOptionalUUID(c, req.DurationOptionID, "durationOptionId")
		if !ok {
			return
		}

		items := make([]domain.CapacityEntry, 0, len(req.Items))
		for _, it := range req.Items {
			date, err := domain.ParseDateOnly(it.Date)
			if err != nil {
				badRequest(c, "invalid date: "+it.Date)
				return
			}
			items = append(items, domain.CapacityEntry{Date: date, Capacity: it.Capacity})
		}

		created, err := svcs.Inventory.UpsertCapacity(c.Request.Context(), resourceID, unitID, items)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, InventoryResponse{OK: true, Created: created})
	}
}

// @Summary  Generate uniform capacity for a date range
// @Param    req body  GenerateRangeRequest true "payload"
// @Success  200 {object} InventoryResponse
// @Router   /availability/admin/inventory/generate-range [post]
func handleGenerateRange(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		resourceID, ok := resolveResourceID(c, req.DestinationID, req.ExperienceID)
		if !ok {
			return
		}

		from, err := domain.ParseDateOnly(req.From)
		if err != nil {
			badRequest(c, "invalid from (YYYY-MM-DD)")
			return
		}
		to, err := domain.ParseDateOnly(req.To)
		if err != nil {
			badRequest(c, "invalid to (YYYY-MM-DD)")
			return
		}

		created, err := svcs.Inventory.GenerateRange(c.Request.Context(), resourceID, from, to, req.Capacity)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, InventoryResponse{OK: true, Created: created})
	}
}

// @Summary  Block a date
// @Param    req body  BlockDateRequest true "payload"
// @Success  200 {object} map[string]bool
// @Router   /availability/admin/blocked-dates [post]
func handleBlockDate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BlockDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		resourceID, ok := resolveResourceID(c, req.DestinationID, req.ExperienceID)
		if !ok {
			return
		}
		date, err := domain.ParseDateOnly(req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		if err := svcs.Inventory.BlockDate(c.Request.Context(), resourceID, date, req.Reason); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary  Unblock a date
// @Param    req body  UnblockDateRequest true "payload"
// @Success  200 {object} map[string]bool
// @Router   /availability/admin/blocked-dates [delete]
func handleUnblockDate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UnblockDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		resourceID, ok := resolveResourceID(c, req.DestinationID, req.ExperienceID)
		if !ok {
			return
		}
		date, err := domain.ParseDateOnly(req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		if err := svcs.Inventory.UnblockDate(c.Request.Context(), resourceID, date); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary  Expire stale holds (storage hygiene)
// @Success  200 {object} ExpireHoldsResponse
// @Router   /availability/admin/holds/expire [post]
func handleExpireHolds(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svcs.Holds.Expire(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ExpireHoldsResponse{Expired: n})
	}
}

// --- Helpers ---

func buildCheckInput(c *gin.Context, req *CheckRequest) (availability.CheckInput, bool) {
	var in availability.CheckInput

	resourceID, ok := resolveResourceID(c, req.DestinationID, req.ExperienceID)
	if !ok {
		return in, false
	}

	unitID, ok := parseOptionalUUID(c, req.DurationOptionID, "durationOptionId")
	if !ok {
		return in, false
	}

	from, err := domain.ParseDateOnly(req.From)
	if err != nil {
		badRequest(c, "invalid from (YYYY-MM-DD)")
		return in, false
	}
	to, err := domain.ParseDateOnly(req.To)
	if err != nil {
		badRequest(c, "invalid to (YYYY-MM-DD)")
		return in, false
	}

	in = availability.CheckInput{
		ResourceID:    resourceID,
		PricingUnitID: unitID,
		From:          from,
		To:            to,
		Guests: domain.GuestCounts{
			Adults:   req.Guests.Adults,
			Children: req.Guests.Children,
			Infants:  req.Guests.Infants,
			Rooms:    req.Guests.Rooms,
		},
		CreateHold: req.CreateHold,
	}

	return in, true
}

func toCheckResponse(res *availability.CheckResult) CheckResponse {
	resp := CheckResponse{
		Available:      res.Available,
		Nights:         res.Nights,
		TotalPrice:     res.TotalCents,
		Currency:       res.Currency,
		Message:        res.Message,
		RemainingUnits: res.Remaining,
		HoldToken:      res.HoldToken,
	}
	if res.BookingID != uuid.Nil {
		resp.BookingID = res.BookingID.String()
	}
	if res.HoldExpiresAt != nil {
		resp.HoldExpiresAt = res.HoldExpiresAt.Format(time.RFC3339)
	}
	return resp
}

func buildHoldRef(c *gin.Context, bookingID, token string) (holds.HoldRef, bool) {
	var ref holds.HoldRef

	if bookingID != "" {
		id, err := uuid.Parse(bookingID)
		if err != nil {
			badRequest(c, "invalid bookingId")
			return ref, false
		}
		ref.BookingID = &id
	}

	ref.Token = strings.TrimSpace(token)

	if ref.BookingID == nil && ref.Token == "" {
		badRequest(c, "bookingId or holdToken is required")
		return ref, false
	}

	return ref, true
}

func resolveResourceID(c *gin.Context, destinationID, experienceID string) (uuid.UUID, bool) {
	raw := destinationID
	if raw == "" {
		raw = experienceID
	} else if experienceID != "" {
		badRequest(c, "provide destinationId or experienceId, not both")
		return uuid.Nil, false
	}

	if raw == "" {
		badRequest(c, "destinationId or experienceId is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, "invalid resource id")
		return uuid.Nil, false
	}

	return id, true
}

func parseOptionalUUID(c *gin.Context, raw, name string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, "invalid "+name)
		return nil, false
	}
	return &id, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var constraintErr *domain.ConstraintError
	if errors.As(err, &constraintErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: constraintErr.Message})
		return
	}

	var rateErr *availability.RateLimitedError
	if errors.As(err, &rateErr) {
		secs := int(rateErr.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: rateErr.Error()})
		return
	}

	switch {
	// validation
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, availability.ErrInvalidRange),
		errors.Is(err, query.ErrInvalidRange),
		errors.Is(err, query.ErrRangeTooLarge),
		errors.Is(err, inventory.ErrInvalidRange),
		errors.Is(err, inventory.ErrInvalidCapacity),
		errors.Is(err, inventory.ErrNoItems),
		errors.Is(err, inventory.ErrNoPricingUnits):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	// not found
	case errors.Is(err, availability.ErrResourceNotFound),
		errors.Is(err, availability.ErrUnitNotFound),
		errors.Is(err, query.ErrResourceNotFound),
		errors.Is(err, inventory.ErrResourceNotFound),
		errors.Is(err, inventory.ErrUnitNotFound),
		errors.Is(err, holds.ErrHoldNotFound),
		errors.Is(err, holds.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	// lifecycle conflicts
	case errors.Is(err, holds.ErrHoldExpired):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "hold expired"})
		return
	case errors.Is(err, holds.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already confirmed"})
		return
	// serialization conflicts: the caller decides whether to retry
	case errors.Is(err, availability.ErrTryAgain), errors.Is(err, holds.ErrTryAgain):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "conflict, try again"})
		return
	}

	// storage internals stay opaque
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
