package authsvc

import (
	"net/http"
	"regexp"

	models "eshop_backend/internal/api/auth/models"
)

type compiledRule struct {
	kind    models.MatchKind
	path    string
	pattern *regexp.Regexp
	methods map[string]struct{}
}

// ExemptionMatcher quyết định request nào không cần xác thực.
// Danh sách rule được copy và compile một lần, chỉ đọc sau đó.
type ExemptionMatcher struct {
	rules []compiledRule
}

// NewExemptionMatcher compile danh sách rule theo thứ tự
func NewExemptionMatcher(rules []models.ExemptionRule) (*ExemptionMatcher, error) {
	m := &ExemptionMatcher{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		cr := compiledRule{kind: r.Kind, path: r.Path}
		if r.Kind == models.MatchPattern {
			re, err := regexp.Compile(r.Path)
			if err != nil {
				return nil, err
			}
			cr.pattern = re
			cr.methods = make(map[string]struct{}, len(r.Methods))
			for _, method := range r.Methods {
				cr.methods[method] = struct{}{}
			}
		}
		m.rules = append(m.rules, cr)
	}
	return m, nil
}

// IsExempt trả về true nếu có bất kỳ rule nào khớp path (và method với rule regex)
func (m *ExemptionMatcher) IsExempt(path, method string) bool {
	for _, r := range m.rules {
		switch r.kind {
		case models.MatchExact:
			if r.path == path {
				return true
			}
		case models.MatchPattern:
			if _, ok := r.methods[method]; ok && r.pattern.MatchString(path) {
				return true
			}
		}
	}
	return false
}

// DefaultExemptionRules là các rule mặc định: đăng nhập/đăng ký, health, metrics
// và đọc catalog ẩn danh (GET/OPTIONS) cho products, categories, ảnh upload.
func DefaultExemptionRules(apiPrefix, uploadsPrefix string) []models.ExemptionRule {
	api := regexp.QuoteMeta(apiPrefix)
	uploads := regexp.QuoteMeta(uploadsPrefix)
	readOnly := []string{http.MethodGet, http.MethodOptions}

	return []models.ExemptionRule{
		{Kind: models.MatchExact, Path: apiPrefix + "/users/login"},
		{Kind: models.MatchExact, Path: apiPrefix + "/users/register"},
		{Kind: models.MatchExact, Path: apiPrefix + "/system/health"},
		{Kind: models.MatchExact, Path: "/metrics"},
		// /products/get/count và /products/get/featured/:count không thuộc rule này
		{Kind: models.MatchPattern, Path: `^` + api + `/products(/[^/]+)?$`, Methods: readOnly},
		{Kind: models.MatchPattern, Path: `^` + api + `/categories(/.*)?$`, Methods: readOnly},
		{Kind: models.MatchPattern, Path: `^` + uploads + `(/.*)?$`, Methods: readOnly},
	}
}
