package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/httperr"
	"github.com/BruksfildServices01/production-board/internal/httpresp"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	"github.com/BruksfildServices01/production-board/internal/models"
	ucClient "github.com/BruksfildServices01/production-board/internal/usecase/client"
)

type ClientHandler struct {
	list   *ucClient.ListClients
	save   *ucClient.SaveClient
	remove *ucClient.DeleteClient
}

func NewClientHandler(
	list *ucClient.ListClients,
	save *ucClient.SaveClient,
	remove *ucClient.DeleteClient,
) *ClientHandler {
	return &ClientHandler{list: list, save: save, remove: remove}
}

type ClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SocialMedia   string `json:"social_media"`
	CPF           string `json:"cpf"`
	CNPJ          string `json:"cnpj"`
	Address       string `json:"address"`
	EssentialInfo string `json:"essential_info"`
}

func (r ClientRequest) fields() ucClient.ClientFields {
	return ucClient.ClientFields{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		SocialMedia:   r.SocialMedia,
		CPF:           r.CPF,
		CNPJ:          r.CNPJ,
		Address:       r.Address,
		EssentialInfo: r.EssentialInfo,
	}
}

func (r ClientRequest) model() *models.Client {
	return &models.Client{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		SocialMedia:   r.SocialMedia,
		CPF:           r.CPF,
		CNPJ:          r.CNPJ,
		Address:       r.Address,
		EssentialInfo: r.EssentialInfo,
	}
}

// ======================================================
// LIST CLIENTS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.list.Execute(c.Request.Context(), middleware.SessionID(c), c.GetString(middleware.ContextUserID))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	h.saveClient(c, "", http.StatusCreated)
}

func (h *ClientHandler) Update(c *gin.Context) {
	h.saveClient(c, c.Param("id"), http.StatusOK)
}

func (h *ClientHandler) saveClient(c *gin.Context, id string, status int) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client, err := h.save.Execute(c.Request.Context(), ucClient.SaveClientInput{
		SessionID: middleware.SessionID(c),
		UserID:    c.GetString(middleware.ContextUserID),
		ClientID:  id,
		Fields:    req.fields(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(status, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	err := h.remove.Execute(
		c.Request.Context(),
		middleware.SessionID(c),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
