package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"meatadmin/database"
	"meatadmin/models"
)

type AuthController struct {
	store  *database.Store
	secret []byte
	logger *zap.Logger
}

func NewAuthController(store *database.Store, secret []byte, logger *zap.Logger) *AuthController {
	return &AuthController{store: store, secret: secret, logger: logger}
}

// SignIn verifies the credentials and then performs the one authorization
// check the dashboard has: the account must own a document in the admins
// collection. Without one, no token is issued.
func (ac *AuthController) SignIn(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var account models.AuthAccount
	err := ac.store.AuthAccounts.FindOne(ctx, bson.M{"email": input.Email}).Decode(&account)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	var admin models.Admin
	err = ac.store.Admins.FindOne(ctx, bson.M{"_id": account.ID.Hex()}).Decode(&admin)
	if err != nil {
		ac.logger.Warn("sign-in rejected, account is not an admin",
			zap.String("email", input.Email))
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: Account is not an admin."})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"accountId": account.ID.Hex(),
		"exp":       time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(ac.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    account.ID.Hex(),
			"email": account.Email,
			"role":  admin.Role,
			"token": tokenString,
		},
	})
}

// SignUp creates the credential record and its admins document, mirroring
// the bootstrap flow of the customer-facing auth provider.
func (ac *AuthController) SignUp(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var existing models.AuthAccount
	err := ac.store.AuthAccounts.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(input.Password), 10)

	account := models.AuthAccount{
		ID:        primitive.NewObjectID(),
		Email:     input.Email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if _, err := ac.store.AuthAccounts.InsertOne(ctx, account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	admin := models.Admin{
		ID:        account.ID.Hex(),
		Email:     input.Email,
		Role:      "admin",
		CreatedAt: time.Now(),
	}
	if _, err := ac.store.Admins.InsertOne(ctx, admin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin registered successfully",
		"user": gin.H{
			"id":    account.ID.Hex(),
			"email": account.Email,
			"role":  admin.Role,
		},
	})
}

// Logout blacklists the presented token until its natural expiry.
func (ac *AuthController) Logout(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token required"})
		return
	}

	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return ac.secret, nil
	})
	// A malformed token string yields a nil token, not just an error.
	if err != nil || token == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		exp := int64(claims["exp"].(float64))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := ac.store.BlacklistTokens.InsertOne(ctx, bson.M{
			"token": tokenString,
			"exp":   exp,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to blacklist token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
}
