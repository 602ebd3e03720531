package payload

import "time"

type VerifiedCertificate struct {
	StudentName    string    `json:"student_name"`
	CourseName     string    `json:"course_name"`
	CompletionDate *string   `json:"completion_date"`
	CertificateID  string    `json:"certificate_id"`
	IssuedBy       string    `json:"issued_by"`
	IssueDate      time.Time `json:"issue_date"`
}

type VerifyResult struct {
	Verified    bool                 `json:"verified"`
	Certificate *VerifiedCertificate `json:"certificate,omitempty"`
	Error       string               `json:"error,omitempty"`
}
