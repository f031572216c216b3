package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/services"
)

// CreateOffice handles multipart creation with an optional logo upload.
func CreateOffice(o *services.OfficeService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.OfficeInput{
			OfficeName:  c.PostForm("office_name"),
			City:        c.PostForm("city"),
			PhoneNumber: c.PostForm("phone_number"),
			Address:     c.PostForm("address"),
		}
		if file, err := c.FormFile("logo"); err == nil {
			path, err := helpers.SaveUpload(c, file, uploadDir)
			if err != nil {
				respondErr(c, err)
				return
			}
			in.LogoURL = path
		}

		office, err := o.CreateOffice(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(office, "office created"))
	}
}

func ListOffices(o *services.OfficeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offices, err := o.ListOffices(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		if offices == nil {
			offices = []*models.Office{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(offices, ""))
	}
}

func UpdateOffice(o *services.OfficeService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parses both multipart and urlencoded bodies; JSON is the fallback.
		_ = c.Request.ParseMultipartForm(32 << 20)
		fields := map[string]interface{}{}
		for key, vals := range c.Request.PostForm {
			if len(vals) > 0 {
				fields[key] = vals[0]
			}
		}
		// JSON body updates are accepted too; multipart wins when both exist.
		if len(fields) == 0 {
			if err := c.ShouldBindJSON(&fields); err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("no fields to update"))
				return
			}
		}
		if file, err := c.FormFile("logo"); err == nil {
			path, err := helpers.SaveUpload(c, file, uploadDir)
			if err != nil {
				respondErr(c, err)
				return
			}
			fields["logo_url"] = path
		}

		office, err := o.UpdateOffice(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(office, "office updated"))
	}
}

func DeleteOffice(o *services.OfficeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := o.DeleteOffice(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "office deleted successfully"))
	}
}
