package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/middleware"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/services"
)

func ListUsers(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := u.ListUsers(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		if users == nil {
			users = []*models.UserView{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(users, ""))
	}
}

func GetUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}
		user, err := u.GetUser(c.Request.Context(), c.Param("id"), claims.UserID(), claims.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}

func UpdateUser(u *services.UserService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		// Parses both multipart and urlencoded bodies; JSON is the fallback.
		_ = c.Request.ParseMultipartForm(32 << 20)
		fields := map[string]interface{}{}
		for key, vals := range c.Request.PostForm {
			if len(vals) > 0 {
				fields[key] = vals[0]
			}
		}
		if len(fields) == 0 {
			if err := c.ShouldBindJSON(&fields); err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("no fields to update"))
				return
			}
		}
		if file, err := c.FormFile("profile_image"); err == nil {
			path, err := helpers.SaveUpload(c, file, uploadDir)
			if err != nil {
				respondErr(c, err)
				return
			}
			fields["profile_image"] = path
		}
		user, err := u.UpdateUser(c.Request.Context(), c.Param("id"), claims.UserID(), claims.Role, fields)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, "user updated"))
	}
}

func DeleteUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := u.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "user deleted successfully"))
	}
}
