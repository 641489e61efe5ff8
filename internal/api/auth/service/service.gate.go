package authsvc

import (
	"context"

	models "eshop_backend/internal/api/auth/models"
	"eshop_backend/internal/common"
	"eshop_backend/internal/metrics"
)

// GateState là trạng thái của gate trong một request
type GateState string

const (
	StateStart       GateState = "START"
	StateExemptCheck GateState = "EXEMPT_CHECK"
	StateVerify      GateState = "VERIFY"
	StateAdmitted    GateState = "ADMITTED"
	StateRejected    GateState = "REJECTED"
)

// GateRequest là input của gate. Credential rỗng nghĩa là request không mang token.
type GateRequest struct {
	Path       string
	Method     string
	Credential string
}

// GateDecision là kết quả cuối cùng của gate
type GateDecision struct {
	State   GateState
	Outcome string         // exempt, admitted, unauthenticated, forbidden, error
	Claims  *models.Claims // chỉ có khi admitted qua VERIFY
}

// Gate kết hợp ExemptionMatcher, TokenVerifier và RevocationPolicy.
// Không giữ trạng thái giữa các request.
type Gate struct {
	exemptions *ExemptionMatcher
	verifier   *TokenVerifier
	revocation RevocationPolicy
}

// NewGate tạo Gate, revocation nil thì dùng AdminOnlyRevocation
func NewGate(exemptions *ExemptionMatcher, verifier *TokenVerifier, revocation RevocationPolicy) *Gate {
	if revocation == nil {
		revocation = AdminOnlyRevocation{}
	}
	return &Gate{exemptions: exemptions, verifier: verifier, revocation: revocation}
}

// Authorize chạy state machine cho một request.
// Lỗi trả về: ErrTokenMissing, ErrTokenInvalid, ErrForbidden hoặc ErrRevocationCheck.
func (g *Gate) Authorize(ctx context.Context, req GateRequest) (GateDecision, error) {
	state := StateStart

	for {
		switch state {
		case StateStart:
			state = StateExemptCheck

		case StateExemptCheck:
			if g.exemptions.IsExempt(req.Path, req.Method) {
				return g.admit(metrics.GateExempt, nil), nil
			}
			if req.Credential == "" {
				return g.reject(metrics.GateUnauthenticated), common.ErrTokenMissing
			}
			state = StateVerify

		case StateVerify:
			claims, err := g.verifier.Verify(req.Credential)
			if err != nil {
				// không phân biệt chữ ký sai hay hết hạn với client
				return g.reject(metrics.GateUnauthenticated), common.ErrTokenInvalid
			}
			revoked, err := g.revocation.IsRevoked(ctx, claims)
			if err != nil {
				return g.reject(metrics.GateError), common.WrapError(common.ErrCodeAuthRevocation, common.ErrRevocationCheck.Error(), common.StatusServiceUnavailable, err)
			}
			if revoked {
				return g.reject(metrics.GateForbidden), common.ErrForbidden
			}
			return g.admit(metrics.GateAdmitted, claims), nil
		}
	}
}

func (g *Gate) admit(outcome string, claims *models.Claims) GateDecision {
	metrics.GateDecision(outcome)
	return GateDecision{State: StateAdmitted, Outcome: outcome, Claims: claims}
}

func (g *Gate) reject(outcome string) GateDecision {
	metrics.GateDecision(outcome)
	return GateDecision{State: StateRejected, Outcome: outcome}
}
