package helpers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"github.com/omarhamdan/safra/internal/models"
)

// TokenTTL is how long issued bearer tokens stay valid.
const TokenTTL = 7 * 24 * time.Hour

// GenerateToken signs an HS256 JWT binding the user's id, role and office.
func GenerateToken(secret string, userID string, role models.Role, officeID string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Role:     role,
		OfficeID: officeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a bearer token and returns
// its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// QRCodeDataURI encodes the payload as a PNG QR code wrapped in a data URI,
// suitable for direct embedding in JSON responses and HTML email bodies.
func QRCodeDataURI(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// SaveUpload writes a multipart file into uploadDir under a random name and
// returns the public path it will be served from. Only image and pdf
// extensions are accepted.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return "", fmt.Errorf("%w: only images and pdf files are allowed", models.ErrInvalid)
	}
	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload: %v", err)
	}
	return "/uploads/" + name, nil
}
