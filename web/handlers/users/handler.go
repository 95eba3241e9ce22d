package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/account"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/web/common"
)

type Endpoint struct {
	base      common.Handler
	directory *account.Directory
}

// Register mounts employee administration. Every route is admin only, the
// caller installs the gate on r.
func Register(r *gin.RouterGroup, base common.Handler, directory *account.Directory) {
	endpoint := &Endpoint{base: base, directory: directory}
	r.GET("", endpoint.List)
	r.POST("", endpoint.Create)
	r.PUT("/:id", endpoint.Update)
	r.DELETE("/:id", endpoint.Deactivate)
}

type CreateUserDTO struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`
}

type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Password   *string `json:"password,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
}

func (ep *Endpoint) List(c *gin.Context) {
	users, err := ep.directory.ListEmployees(c.Request.Context())
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ep *Endpoint) Create(c *gin.Context) {
	var body CreateUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	user, err := ep.directory.CreateEmployee(c.Request.Context(), account.EmployeeInput{
		Name:       body.Name,
		Email:      body.Email,
		Password:   body.Password,
		Department: body.Department,
		Position:   body.Position,
		Phone:      body.Phone,
	})
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ep *Endpoint) Update(c *gin.Context) {
	var body UpdateUserDTO
	if err := common.ShouldBindBody(c, &body); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	user, err := ep.directory.UpdateEmployee(c.Request.Context(), c.Param("id"), account.EmployeeUpdate{
		Name:       body.Name,
		Email:      body.Email,
		Password:   body.Password,
		Department: body.Department,
		Position:   body.Position,
		Phone:      body.Phone,
		IsActive:   body.IsActive,
	})
	if err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ep *Endpoint) Deactivate(c *gin.Context) {
	if err := ep.directory.DeactivateEmployee(c.Request.Context(), c.Param("id")); err != nil {
		ep.base.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewMessageResponse("User deactivated"))
}
