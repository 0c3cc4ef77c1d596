package public

import (
	"net/http"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha issues an image challenge for the requested scene.
func (h *Handler) GetCaptcha(c *gin.Context) {
	scene := c.DefaultQuery("scene", constants.CaptchaSceneLogin)
	if !h.CaptchaService.SceneEnabled(scene) {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Captcha generation failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
