package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/services"
)

// Register handles multipart signup with an optional profile image.
func Register(a *services.AuthService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.RegisterInput{
			FullName: c.PostForm("full_name"),
			Phone:    c.PostForm("phone"),
			Email:    c.PostForm("email"),
			Password: c.PostForm("password"),
			Role:     models.Role(c.PostForm("role")),
			OfficeID: c.PostForm("office_id"),
		}

		if file, err := c.FormFile("profile_image"); err == nil {
			path, err := helpers.SaveUpload(c, file, uploadDir)
			if err != nil {
				respondErr(c, err)
				return
			}
			in.ProfileImage = path
		}

		user, err := a.Register(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(user, "user created successfully"))
	}
}

func Login(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone    string `json:"phone" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("phone and password are required"))
			return
		}

		token, user, err := a.Login(c.Request.Context(), req.Phone, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"token": token,
			"user":  user,
		}, "login successful"))
	}
}
