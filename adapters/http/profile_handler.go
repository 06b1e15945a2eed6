package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/profile"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc}
}

func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetMine(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": ToProfileDTO(output.Profile)})
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newValidationError(err, upsertProfileFieldMsgs))
		return
	}

	output, err := h.profileUseCase.ExecuteUpsert(c.Request.Context(), profileUC.UpsertProfileInput{
		UserID: userID,
		Update: req.toUpdate(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) List(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProfileDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToProfileDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	// A malformed id is reported the same as a missing profile.
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewNotFoundMsg("Profile not found"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetByUserID(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	if err := h.profileUseCase.ExecuteDeleteAccount(c.Request.Context(), profileUC.DeleteAccountInput{UserID: userID}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "user deleted"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req addExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newValidationError(err, addExperienceFieldMsgs))
		return
	}

	output, err := h.profileUseCase.ExecuteAddExperience(c.Request.Context(), profileUC.AddExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From.Time,
		To:          optionalTime(req.To),
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	// An unparseable entry id matches nothing and falls through to the
	// remove-is-noop path.
	entryID, _ := uuid.Parse(c.Param("exp_id"))

	output, err := h.profileUseCase.ExecuteRemoveExperience(c.Request.Context(), profileUC.RemoveEntryInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req addEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newValidationError(err, addEducationFieldMsgs))
		return
	}

	output, err := h.profileUseCase.ExecuteAddEducation(c.Request.Context(), profileUC.AddEducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From.Time,
		To:           optionalTime(req.To),
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	entryID, _ := uuid.Parse(c.Param("edu_id"))

	output, err := h.profileUseCase.ExecuteRemoveEducation(c.Request.Context(), profileUC.RemoveEntryInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}
