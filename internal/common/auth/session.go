// Package auth 提供会话身份：从 JWT 中解析出 {uid, name}，
// 供引擎做 ownerUid 比对。认证体系本身（登录、角色）不在本服务范围内。
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/config"
)

// Session 当前调用方的最小身份信息。
type Session struct {
	UID  string // 会话/用户标识，用于 ownerUid 比对
	Name string // 展示名
}

// Claims JWT 载荷：标准字段 + 展示名。
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ParseSessionToken 校验 HS256 JWT 并解析出 Session。
// exp/nbf 由 jwt/v5 默认校验；iss/aud 按配置可选校验。
func ParseSessionToken(cfg config.AuthConfig, tokenStr string) (Session, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return Session{}, fmt.Errorf("token is empty")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Session{}, fmt.Errorf("jwt_secret is empty")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || parsed == nil || !parsed.Valid {
		return Session{}, fmt.Errorf("invalid token")
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return Session{}, fmt.Errorf("invalid issuer")
	}
	if cfg.Audience != "" && !audienceContains(claims.Audience, cfg.Audience) {
		return Session{}, fmt.Errorf("invalid audience")
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = claims.Subject
	}
	return Session{UID: claims.Subject, Name: name}, nil
}

// GenerateSessionToken 生成 HS256 会话 token（测试与本地开发用）。
func GenerateSessionToken(cfg config.AuthConfig, uid, name string, ttl time.Duration) (token string, expiresAt time.Time, err error) {
	if uid == "" {
		return "", time.Time{}, fmt.Errorf("uid is empty")
	}
	if cfg.JWTSecret == "" {
		return "", time.Time{}, fmt.Errorf("jwt_secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	expiresAt = now.Add(ttl)

	c := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    cfg.Issuer,
			Audience:  audience(cfg.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func audience(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}

func audienceContains(aud jwt.ClaimStrings, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" || len(aud) == 0 {
		return false
	}
	for _, v := range aud {
		if strings.TrimSpace(v) == want {
			return true
		}
	}
	return false
}
