package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/httpresp"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	ucUser "github.com/BruksfildServices01/production-board/internal/usecase/user"
)

// UserHandler serves the administration screen. Routes sit behind
// MasterOnly; the use cases check the role again.
type UserHandler struct {
	admin *ucUser.Admin
}

func NewUserHandler(admin *ucUser.Admin) *UserHandler {
	return &UserHandler{admin: admin}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	CPF      string `json:"cpf"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	CPF      *string `json:"cpf"`
	Role     *string `json:"role"`
	Approved *bool   `json:"approved"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.admin.List(c.Request.Context(), middleware.CurrentProfile(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.admin.Create(c.Request.Context(), ucUser.CreateUserInput{
		SessionID: middleware.SessionID(c),
		Actor:     middleware.CurrentProfile(c),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CPF:       req.CPF,
		Password:  req.Password,
		Role:      req.Role,
		Approved:  req.Approved,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.admin.Update(c.Request.Context(), ucUser.UpdateUserInput{
		SessionID: middleware.SessionID(c),
		Actor:     middleware.CurrentProfile(c),
		UserID:    c.Param("id"),
		Name:      req.Name,
		Phone:     req.Phone,
		CPF:       req.CPF,
		Role:      req.Role,
		Approved:  req.Approved,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Delete(c *gin.Context) {
	err := h.admin.Delete(
		c.Request.Context(),
		middleware.SessionID(c),
		middleware.CurrentProfile(c),
		c.Param("id"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
