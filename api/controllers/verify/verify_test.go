package verify_controller_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	verify_controller "github.com/sunthewhat/certgen-api/api/controllers/verify"
	certificatemodel "github.com/sunthewhat/certgen-api/api/model/certificateModel"
	"github.com/sunthewhat/certgen-api/internal/verification"
	"github.com/sunthewhat/certgen-api/type/payload"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

func TestVerifyController_Verify(t *testing.T) {
	date := "2024-06-01"
	issued := &model.Certificate{
		ID:               "ab12cd34-0000-4000-8000-000000000000",
		StudentName:      "Ann Lee",
		CourseName:       "Go Fundamentals",
		CompletionDate:   &date,
		VerificationCode: "AB12CD34",
		CreatedAt:        time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		code           string
		lookupErr      error
		wantStatusCode int
		want           payload.VerifyResult
	}{
		{
			name:           "verified",
			code:           "AB12CD34",
			wantStatusCode: fiber.StatusOK,
			want: payload.VerifyResult{Verified: true, Certificate: &payload.VerifiedCertificate{
				StudentName:    "Ann Lee",
				CourseName:     "Go Fundamentals",
				CompletionDate: &date,
				CertificateID:  "AB12CD34",
				IssuedBy:       "Go Academy",
				IssueDate:      issued.CreatedAt,
			}},
		},
		{
			name:           "unknown code is still 200",
			code:           "FFFFFFFF",
			wantStatusCode: fiber.StatusOK,
			want:           payload.VerifyResult{Verified: false, Error: verification.MsgNotFound},
		},
		{
			name:           "lookup failure",
			code:           "AB12CD34",
			lookupErr:      errors.New("db down"),
			wantStatusCode: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := certificatemodel.NewMockCertificateRepository()
			repo.GetByVerificationCodeFunc = func(code string) (*model.Certificate, error) {
				if tt.lookupErr != nil {
					return nil, tt.lookupErr
				}
				if code == issued.VerificationCode {
					return issued, nil
				}
				return nil, nil
			}
			ctrl := verify_controller.NewVerifyController(verification.NewService(repo, nil, "Go Academy"))

			app := fiber.New()
			app.Get("/public/verify/:code", ctrl.Verify)

			resp, err := app.Test(httptest.NewRequest("GET", "/public/verify/"+tt.code, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode != fiber.StatusOK {
				return
			}
			body, _ := io.ReadAll(resp.Body)
			var got payload.VerifyResult
			require.NoError(t, json.Unmarshal(body, &got))
			if got.Certificate != nil {
				assert.True(t, got.Certificate.IssueDate.Equal(tt.want.Certificate.IssueDate))
				got.Certificate.IssueDate = tt.want.Certificate.IssueDate
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
