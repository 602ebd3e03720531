package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sunthewhat/certgen-api/internal/cache"
	"github.com/sunthewhat/certgen-api/type/payload"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

const (
	DefaultTTL = 10 * time.Minute

	MsgCodeRequired = "Verification code is required."
	MsgNotFound     = "Certificate not found or invalid verification code."
)

type CertificateLookup interface {
	GetByVerificationCode(code string) (*model.Certificate, error)
}

// Service answers public verification lookups. Positive answers are cached
// under "verify:<code>" when a cache is configured.
type Service struct {
	certificates CertificateLookup
	cache        cache.Cache
	issuedBy     string
	ttl          time.Duration
}

func NewService(certificates CertificateLookup, c cache.Cache, issuedBy string) *Service {
	return &Service{
		certificates: certificates,
		cache:        c,
		issuedBy:     issuedBy,
		ttl:          DefaultTTL,
	}
}

func cacheKey(code string) string {
	return "verify:" + code
}

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Verify resolves code to the public certificate summary. A missing
// certificate is a negative result, not an error.
func (s *Service) Verify(ctx context.Context, code string) (*payload.VerifyResult, error) {
	code = NormalizeCode(code)
	if code == "" {
		return &payload.VerifyResult{Verified: false, Error: MsgCodeRequired}, nil
	}

	if s.cache != nil {
		var cached payload.VerifiedCertificate
		hit, err := s.cache.GetJSON(ctx, cacheKey(code), &cached)
		if err != nil {
			slog.Warn("Verification cache read failed", "code", code, "error", err)
		}
		if hit {
			return &payload.VerifyResult{Verified: true, Certificate: &cached}, nil
		}
	}

	cert, err := s.certificates.GetByVerificationCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}
	if cert == nil {
		return &payload.VerifyResult{Verified: false, Error: MsgNotFound}, nil
	}

	summary := s.summarize(cert)
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey(code), summary, s.ttl); err != nil {
			slog.Warn("Verification cache write failed", "code", code, "error", err)
		}
	}

	return &payload.VerifyResult{Verified: true, Certificate: summary}, nil
}

// Invalidate drops a cached answer, e.g. after the certificate is deleted.
func (s *Service) Invalidate(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(NormalizeCode(code))); err != nil {
		slog.Warn("Verification cache invalidation failed", "code", code, "error", err)
	}
}

func (s *Service) summarize(cert *model.Certificate) *payload.VerifiedCertificate {
	return &payload.VerifiedCertificate{
		StudentName:    cert.StudentName,
		CourseName:     cert.CourseName,
		CompletionDate: cert.CompletionDate,
		CertificateID:  cert.ShortID(),
		IssuedBy:       s.issuedBy,
		IssueDate:      cert.CreatedAt,
	}
}
