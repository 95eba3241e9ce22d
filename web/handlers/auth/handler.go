package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/account"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/model"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/security"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/middlewares"
)

type Endpoint struct {
	base   common.Handler
	store  *account.CredentialStore
	issuer *security.TokenIssuer
}

func Register(r *gin.RouterGroup, base common.Handler, store *account.CredentialStore, issuer *security.TokenIssuer) {
	endpoint := &Endpoint{base: base, store: store, issuer: issuer}
	r.POST("/login", endpoint.Login)
	r.GET("/me", middlewares.Authentication(issuer), endpoint.Me)
	// unauthenticated: gated by knowledge of the old password
	r.POST("/change-password", endpoint.ChangePassword)
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (ep *Endpoint) Login(c *gin.Context) {
	var body LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	user, err := ep.store.VerifyCredentials(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}

	token, err := ep.issuer.Issue(user.ID, user.Role)
	if err != nil {
		ep.base.Fail(c, core.NewInternalError("Server error during login.", err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

func (ep *Endpoint) Me(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		ep.base.Fail(c, core.ErrNotAuthorized)
		return
	}

	user, err := ep.store.Me(c.Request.Context(), identity.ID)
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type ChangePasswordDTO struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (ep *Endpoint) ChangePassword(c *gin.Context) {
	var body ChangePasswordDTO
	if err := common.ShouldBindBody(c, &body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	if err := ep.store.ChangePassword(c.Request.Context(), body.Email, body.OldPassword, body.NewPassword); err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewMessageResponse("Password changed successfully."))
}
