package scheduler

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const surveyTokenTTL = 7 * 24 * time.Hour

// SurveyClaims names the exact interaction a survey request was issued for,
// so the answer can target one record instead of matching by content.
type SurveyClaims struct {
	InteractionID string `json:"iid"`
	jwt.RegisteredClaims
}

// SurveyTokens signs and verifies survey tokens with HS256.
type SurveyTokens struct {
	secret []byte
}

func NewSurveyTokens(secret []byte) *SurveyTokens {
	return &SurveyTokens{secret: secret}
}

func (t *SurveyTokens) Issue(userID, interactionID uuid.UUID, now time.Time) (string, error) {
	claims := &SurveyClaims{
		InteractionID: interactionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(surveyTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies token and returns the user and interaction it names.
func (t *SurveyTokens) Parse(token string, now time.Time) (userID, interactionID uuid.UUID, err error) {
	claims := &SurveyClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err = uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: subject", ErrInvalidToken)
	}
	interactionID, err = uuid.Parse(claims.InteractionID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: interaction", ErrInvalidToken)
	}
	return userID, interactionID, nil
}
