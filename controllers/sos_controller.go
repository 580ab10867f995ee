package controllers

import (
	"securix/services"
	"securix/utils"

	"github.com/gin-gonic/gin"
)

type SOSController struct {
	sosService *services.SOSService
}

func NewSOSController(sosService *services.SOSService) *SOSController {
	return &SOSController{
		sosService: sosService,
	}
}

// Trigger starts an SOS activation.
func (sc *SOSController) Trigger(c *gin.Context) {
	status, err := sc.sosService.Activate(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.AcceptedResponse(c, "SOS activation started", status)
}

// Resolve ends the active SOS session.
func (sc *SOSController) Resolve(c *gin.Context) {
	status, err := sc.sosService.Resolve(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "SOS resolved", status)
}

// Cancel discards the in-flight SOS session.
func (sc *SOSController) Cancel(c *gin.Context) {
	status, err := sc.sosService.Cancel(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "SOS cancelled", status)
}

// Status reports the current activation slot.
func (sc *SOSController) Status(c *gin.Context) {
	utils.SuccessResponse(c, "SOS status", sc.sosService.Status(c.Request.Context()))
}
