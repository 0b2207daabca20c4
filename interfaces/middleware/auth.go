package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/infrastructure/credential"
	"content-planner/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Auth validates the bearer JWT, sets user_id on the gin context and carries
// the raw token on the request context so backend calls can forward it.
func Auth(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}

		authorization := ctx.Request.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		tokenString = strings.TrimSpace(tokenString)

		userClaims, token, err := getClaim(tokenString, secretKey)
		if err != nil || token == nil || !token.Valid {
			res.ResponseMessage = rejectMessage(err)
			logger.GetLogger().WithField("error", err).Debug("rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		userID := userClaims.Issuer
		if userID == "" {
			userID = userClaims.Subject
		}
		if userID == "" {
			res.ResponseMessage = "Token has no subject"
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		ctx.Set("user_id", userID)
		ctx.Set("user_name", userClaims.UserName)
		reqCtx := credential.WithBearer(ctx.Request.Context(), tokenString)
		reqCtx = credential.WithUserID(reqCtx, userID)
		ctx.Request = ctx.Request.WithContext(reqCtx)
		ctx.Next()
	}
}

func rejectMessage(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			// Token is either expired or not active yet
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}

func getClaim(tokenString, secretKey string) (model.UserClaims, *jwt.Token, error) {
	var userClaims model.UserClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&userClaims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		},
	)
	return userClaims, token, err
}
