package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/models"
	"github.com/yeremiapane/pizzeria-app/services"
	"github.com/yeremiapane/pizzeria-app/utils"
)

type UserController struct {
	DB       *gorm.DB
	Verifier *services.VerificationService
}

func NewUserController(db *gorm.DB, verifier *services.VerificationService) *UserController {
	return &UserController{DB: db, Verifier: verifier}
}

// Register creates an account that stays inactive until its email is
// verified. A verification code is mailed right away.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	if role != "admin" && role != "staff" {
		utils.HandleError(c, utils.ValidationError("role must be admin or staff"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Role:     role,
		Active:   false,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := uc.Verifier.SendCode(c.Request.Context(), user.Email); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered, verification code sent", gin.H{
		"user_id": user.ID,
	})
}

// SendVerificationCode re-issues a code for an unverified account.
func (uc *UserController) SendVerificationCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(req.Email)
	var user models.User
	if err := uc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	if err := uc.Verifier.SendCode(c.Request.Context(), email); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Verification code sent", nil)
}

// VerifyEmail consumes a verification code and activates the account.
func (uc *UserController) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(req.Email)
	if err := uc.Verifier.Verify(c.Request.Context(), email, req.Code); err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("email = ?", email).Update("active", true).Error; err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Email verified", nil)
}

// ForgotPassword mails a reset code. To avoid leaking which emails have
// accounts, an unknown address still gets a 200.
func (uc *UserController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(req.Email)
	var user models.User
	if err := uc.DB.Where("email = ?", email).First(&user).Error; err == nil {
		if err := uc.Verifier.SendResetCode(c.Request.Context(), email); err != nil {
			utils.HandleError(c, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "If the account exists, a reset code was sent", nil)
}

// ResetPassword consumes a reset code and replaces the password.
func (uc *UserController) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(req.Email)
	if err := uc.Verifier.VerifyReset(c.Request.Context(), email, req.Code); err != nil {
		utils.HandleError(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	result := uc.DB.Model(&models.User{}).Where("email = ?", email).Update("password", string(hashed))
	if result.Error != nil {
		utils.HandleError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	utils.InfoLogger.Printf("Password reset for %s", email)

	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}

// Login checks credentials and returns a JWT. Unverified accounts are
// rejected with 403.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	err := uc.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.HandleError(c, utils.ErrInvalidCredentials)
			return
		}
		utils.HandleError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		utils.HandleError(c, utils.ErrInvalidCredentials)
		return
	}

	if !user.Active {
		utils.HandleError(c, utils.ErrAccountInactive)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.HandleError(c, utils.ErrNotFoundOrInactive)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User profile", user)
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", users)
}
