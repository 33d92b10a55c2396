package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/models/request_models"
	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type DoctorController struct {
	doctorService services.DoctorServiceInterface
}

func NewDoctorController(doctorService services.DoctorServiceInterface) *DoctorController {
	return &DoctorController{doctorService: doctorService}
}

// Search godoc
// @Summary Recommend doctors
// @Description Four doctors or hospitals for a city and specialty
// @Tags Doctors
// @Produce json
// @Param city query string false "City"
// @Param specialty query string false "Specialty"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /doctors/search [get]
func (d *DoctorController) Search(c *gin.Context) {
	var q request_models.DoctorSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	result, err := d.doctorService.Search(c.Request.Context(), q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Doctors fetched successfully")
}
