package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/PierreClouet/WorkEat/internal/api/metrics"
	"github.com/PierreClouet/WorkEat/internal/core/domain"
	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

// AccountHandler binds the account operations to HTTP.
type AccountHandler struct {
	accounts ports.AccountService
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, sessions ports.SessionStore, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions, log: log}
}

// List returns every account, unpaginated, in store-native order.
//
// @Summary      List all accounts (admin only)
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Login authenticates a credential pair and establishes a session.
//
// Field-level validation failures are reported as authentication failures
// (401), not bad requests — the contract the clients were built against.
//
// @Summary      Login
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Error: "Username or password was left empty. Please complete both fields and re-submit.",
		})
	}

	account, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{
				Error: "User not found. Please check your entry and try again.",
			})
		}
		return err
	}

	token, err := h.sessions.Create(c.Request().Context(), ports.SessionIdentity{
		AccountID: account.ID,
		Username:  account.Username,
		IsAdmin:   account.IsAdmin,
	})
	if err != nil {
		h.log.Error().Err(err).Str("username", account.Username).Msg("session creation failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error saving session."})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toProfile(account)})
}

// Create registers a new account and queues the welcome email.
//
// @Summary      Register a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      accountRequest  true  "Account fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  validationResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	_, err := h.accounts.Register(c.Request().Context(), toInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "That username already exists. Please try a different username.",
			})
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("account creation failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "Error saving new account (database error). Please try again.",
		})
	}

	metrics.AccountsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Account created! Please login with your new account.",
	})
}

// Update fully replaces the caller's own account. The target is always the
// session identity's account id — never a client-supplied id.
//
// @Summary      Update the authenticated account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      accountRequest  true  "Account fields (full replace)"
// @Success      200   {object}  updateResponse
// @Failure      400   {object}  validationResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts [put]
func (h *AccountHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	updated, err := h.accounts.Update(c.Request().Context(), identity.AccountID, toInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email already exists"})
		}
		return err
	}

	return c.JSON(http.StatusOK, updateResponse{User: updated, Status: "Account updated"})
}

// Delete removes the caller's own account and destroys the session.
//
// @Summary      Delete the authenticated account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteRequest  true  "Username to delete (must be the caller's)"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /accounts [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	if err := h.accounts.Delete(c.Request().Context(), identity, req.Username); err != nil {
		return err
	}

	if err := h.sessions.Destroy(c.Request().Context(), ctxSessionToken(c)); err != nil {
		h.log.Error().Err(err).Str("username", identity.Username).Msg("session destruction failed after delete")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error deleting account."})
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Account successfully deleted."})
}

// Logout destroys the current session. Mounted behind the lenient session
// middleware so an unauthenticated request reaches here and gets the 400.
//
// @Summary      Logout
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /accounts/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	token := ctxSessionToken(c)
	if _, ok := c.Get(CtxIdentity).(ports.SessionIdentity); !ok || token == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "User not logged in."})
	}

	if err := h.sessions.Destroy(c.Request().Context(), token); err != nil {
		h.log.Error().Err(err).Msg("session destruction failed on logout")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Sorry. Server error in logout process."})
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Success logging user out!"})
}

// validationFailure renders the structured per-field message list.
func validationFailure(c echo.Context, err error) error {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, validationResponse{Errors: ve.Messages})
	}
	return c.JSON(http.StatusBadRequest, validationResponse{Errors: []string{err.Error()}})
}

func toInput(req accountRequest) ports.AccountInput {
	return ports.AccountInput{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Surname:     req.Surname,
		PostalCode:  req.PostalCode,
		Town:        req.Town,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
}

func toProfile(a *domain.Account) profileResponse {
	return profileResponse{
		Username:      a.Username,
		Name:          a.Name,
		Surname:       a.Surname,
		PostalCode:    a.PostalCode,
		Address:       a.Address,
		PhoneNumber:   a.PhoneNumber,
		Town:          a.Town,
		IsAdmin:       a.IsAdmin,
		IsLivreur:     a.IsLivreur,
		IsPrestataire: a.IsPrestataire,
	}
}
