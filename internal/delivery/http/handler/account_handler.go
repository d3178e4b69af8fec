package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainAccount "pinpoint-accounts/internal/domain/account"
	"pinpoint-accounts/internal/logger"
	"pinpoint-accounts/internal/middleware"
	"pinpoint-accounts/internal/usecase/account"
	appErrors "pinpoint-accounts/pkg/errors"
	"pinpoint-accounts/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/getAllUsers", h.GetAllUsers)
		auth.GET("/getSingleUser/:id", h.GetSingleUser)
		auth.POST("/registerUser", h.RegisterUser)
		auth.POST("/registerPartner", h.RegisterPartner)
		auth.POST("/loginUser", h.LoginUser)
		auth.POST("/verifyUser", h.VerifyUser)
		auth.POST("/resendOtp", h.ResendOTP)
		auth.POST("/initializeForgotPassword", h.InitForgotPassword)
		auth.POST("/finalizeForgotPassword", h.FinalizeForgotPassword)
		auth.DELETE("/deleteAllUsers/:tag", h.DeleteAllUsers)
	}
}

func (h *AccountHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/profile", h.GetProfile)
	}
}

func (h *AccountHandler) RegisterUser(c *gin.Context) {
	var req account.RegisterUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != "" {
		email, err := utils.ValidateAndSanitizeEmail(req.Email)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = email
	}
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)
	req.UserName = utils.SanitizeString(req.UserName)
	req.City = utils.SanitizeString(req.City)
	req.State = utils.SanitizeString(req.State)

	resp, err := h.service.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, registerMessage(resp), resp)
}

func (h *AccountHandler) RegisterPartner(c *gin.Context) {
	var req account.RegisterPartnerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != "" {
		email, err := utils.ValidateAndSanitizeEmail(req.Email)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = email
	}
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)
	req.UserName = utils.SanitizeString(req.UserName)
	req.City = utils.SanitizeString(req.City)
	req.State = utils.SanitizeString(req.State)
	req.LegalName = utils.SanitizeString(req.LegalName)
	req.Address = utils.SanitizeString(req.Address)
	req.Category = utils.SanitizeString(req.Category)

	resp, err := h.service.RegisterPartner(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, registerMessage(resp), resp)
}

func (h *AccountHandler) LoginUser(c *gin.Context) {
	var req account.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != "" {
		email, err := utils.ValidateAndSanitizeEmail(req.Email)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = email
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login Successful", resp)
}

func (h *AccountHandler) VerifyUser(c *gin.Context) {
	otp := c.Query("emailOtp")

	resp, err := h.service.VerifyEmail(c.Request.Context(), otp)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email Verification Successful", resp)
}

func (h *AccountHandler) ResendOTP(c *gin.Context) {
	userID := c.Query("userID")

	resp, err := h.service.ResendOTP(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP Sent", resp)
}

func (h *AccountHandler) InitForgotPassword(c *gin.Context) {
	var req account.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != "" {
		email, err := utils.ValidateAndSanitizeEmail(req.Email)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = email
	}

	resp, err := h.service.InitForgotPassword(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP Sent", resp)
}

func (h *AccountHandler) FinalizeForgotPassword(c *gin.Context) {
	otp := c.Query("emailOtp")

	var req account.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.FinalizeForgotPassword(c.Request.Context(), otp, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password Reset!", resp)
}

func (h *AccountHandler) GetAllUsers(c *gin.Context) {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	resp, err := h.service.GetAll(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Accounts retrieved", resp)
}

func (h *AccountHandler) GetSingleUser(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account retrieved", resp)
}

func (h *AccountHandler) DeleteAllUsers(c *gin.Context) {
	tag := c.Param("tag")

	resp, err := h.service.DeleteAll(c.Request.Context(), tag)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All accounts deleted", resp)
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	accountID, exists := c.Get(middleware.ContextAccountID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := accountID.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Invalid account identifier")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id.String())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved", resp)
}

func registerMessage(resp *account.RegisterResponse) string {
	if !resp.OTPEmailSent {
		return "Account created, but the verification email could not be sent. Request a new code via resendOtp."
	}
	return "Success, check your mail for your verification code!"
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainAccount.ErrAccountAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainAccount.ErrInvalidCredentials),
		errors.Is(err, domainAccount.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainAccount.ErrAccountNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainAccount.ErrInvalidOTP),
		errors.Is(err, domainAccount.ErrOTPExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case "DEPENDENCY_ERROR":
				utils.ErrorResponse(c, http.StatusBadGateway, appErr.Message)
			default:
				utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			}
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
