// Package models - Claims, ExemptionRule thuộc domain auth.
package models

import "github.com/golang-jwt/jwt/v4"

// Claims là payload của token. IsAdmin thiếu thì mặc định false (bị từ chối).
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// MatchKind kiểu so khớp của ExemptionRule
type MatchKind int

const (
	MatchExact   MatchKind = iota // so khớp nguyên path, không quan tâm method
	MatchPattern                  // so khớp regex, yêu cầu method nằm trong Methods
)

// ExemptionRule mô tả một tổ hợp path/method không cần xác thực
type ExemptionRule struct {
	Kind    MatchKind
	Path    string   // path chính xác hoặc biểu thức regex
	Methods []string // chỉ dùng cho MatchPattern
}
