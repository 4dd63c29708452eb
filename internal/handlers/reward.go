package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/dto"
	apierrors "github.com/habitfam/family-habits-api/internal/errors"
	"github.com/habitfam/family-habits-api/internal/middleware"
	"github.com/habitfam/family-habits-api/internal/services"
)

// RewardHandler exposes reward CRUD and redemption endpoints.
type RewardHandler struct {
	rewardService *services.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// CreateReward adds a reward to the caller's family.
func (h *RewardHandler) CreateReward(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRewardRequest struct {
		Title          string `json:"title" binding:"required"`
		Description    string `json:"description"`
		PointsRequired int    `json:"points_required" binding:"min=0"`
		Emoji          string `json:"emoji" binding:"omitempty,max=2"`
	}

	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reward, err := h.rewardService.Create(subject, services.CreateRewardInput{
		Title:          req.Title,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Emoji:          req.Emoji,
	})
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRewardDTO(*reward))
}

// ListRewards returns every reward of the caller's family.
func (h *RewardHandler) ListRewards(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	rewards, err := h.rewardService.List(subject)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	rewardDTOs := make([]dto.RewardDTO, len(rewards))
	for i, reward := range rewards {
		rewardDTOs[i] = dto.ToRewardDTO(reward)
	}

	c.JSON(http.StatusOK, gin.H{
		"rewards": rewardDTOs,
	})
}

// UpdateReward modifies a reward of the caller's family.
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	subject, rewardID, ok := subjectAndID(c)
	if !ok {
		return
	}

	type UpdateRewardRequest struct {
		Title          *string `json:"title"`
		Description    *string `json:"description"`
		PointsRequired *int    `json:"points_required"`
		Emoji          *string `json:"emoji" binding:"omitempty,max=2"`
	}

	var req UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reward, err := h.rewardService.Update(subject, rewardID, services.UpdateRewardInput{
		Title:          req.Title,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Emoji:          req.Emoji,
	})
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRewardDTO(*reward))
}

// DeleteReward removes a reward and its redemption records.
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	subject, rewardID, ok := subjectAndID(c)
	if !ok {
		return
	}

	if err := h.rewardService.Delete(subject, rewardID); err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward deleted successfully",
	})
}

// RedeemReward exchanges the caller's points for a reward.
func (h *RewardHandler) RedeemReward(c *gin.Context) {
	subject, rewardID, ok := subjectAndID(c)
	if !ok {
		return
	}

	redemption, err := h.rewardService.Redeem(subject, rewardID)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRedemptionDTO(*redemption))
}

// GetRedeemedRewards returns the caller's redemption history.
func (h *RewardHandler) GetRedeemedRewards(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	redemptions, err := h.rewardService.Redeemed(subject)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	redeemedDTOs := make([]dto.RedeemedRewardDTO, len(redemptions))
	for i, redemption := range redemptions {
		redeemedDTOs[i] = dto.ToRedeemedRewardDTO(redemption)
	}

	c.JSON(http.StatusOK, gin.H{
		"redeemed": redeemedDTOs,
	})
}

func respondRewardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoFamily),
		errors.Is(err, services.ErrRewardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotParent),
		errors.Is(err, services.ErrNotChild),
		errors.Is(err, services.ErrRewardOtherFamily),
		errors.Is(err, services.ErrRewardTitleRequired),
		errors.Is(err, services.ErrNegativePoints),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrInsufficientPoints):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
