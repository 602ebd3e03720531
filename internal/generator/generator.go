package generator

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"time"

	certificatemodel "github.com/sunthewhat/certgen-api/api/model/certificateModel"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

type TemplateStore interface {
	GetVisible(templateId string, userId string) (*model.Template, error)
}

type CertificateStore interface {
	Create(data certificatemodel.CreateCertificateData) (*model.Certificate, error)
	UpdatePdfPath(certificateId string, pdfPath string) error
}

// Renderer produces the PDF for a certificate and returns its public path.
type Renderer interface {
	Render(ctx context.Context, cert *model.Certificate, tmpl *model.Template) (string, error)
}

// ArchiveFiles locates generated artifacts on disk.
type ArchiveFiles interface {
	Resolve(publicPath string) (string, error)
	PublicPath(name string) string
	Path(name string) string
	CreateUnique(name func(seq int64) string, seq int64) (*os.File, string, error)
}

// ArchiveMirror receives a copy of every finished archive.
type ArchiveMirror interface {
	Mirror(ctx context.Context, localPath, objectName string) error
}

// Caller identifies the authenticated principal requesting generation.
type Caller struct {
	UserID string
	Role   string
}

type SingleResult struct {
	Certificate *model.Certificate
	DownloadURL string
}

type BulkResult struct {
	Certificates []*model.Certificate
	ZipPath      string
}

func (r *BulkResult) Count() int {
	return len(r.Certificates)
}

func (r *BulkResult) Message() string {
	return fmt.Sprintf("%d certificates generated.", len(r.Certificates))
}

type Generator struct {
	templates    TemplateStore
	certificates CertificateStore
	renderer     Renderer
	files        ArchiveFiles
	mirror       ArchiveMirror
	newCode      func() string
	now          func() time.Time
}

type Option func(*Generator)

// WithMirror copies finished archives to m. Mirror failures are logged only.
func WithMirror(m ArchiveMirror) Option {
	return func(g *Generator) {
		g.mirror = m
	}
}

// WithCodeSource replaces the verification code generator.
func WithCodeSource(fn func() string) Option {
	return func(g *Generator) {
		g.newCode = fn
	}
}

func WithClock(fn func() time.Time) Option {
	return func(g *Generator) {
		g.now = fn
	}
}

func New(templates TemplateStore, certificates CertificateStore, renderer Renderer, files ArchiveFiles, opts ...Option) *Generator {
	g := &Generator{
		templates:    templates,
		certificates: certificates,
		renderer:     renderer,
		files:        files,
		newCode:      NewVerificationCode,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) authorize(caller Caller) error {
	if caller.Role == model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (g *Generator) loadTemplate(templateId string, caller Caller) (*model.Template, error) {
	tmpl, err := g.templates.GetVisible(templateId, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if tmpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tmpl, nil
}

// issue persists one certificate, renders it and records the PDF path.
func (g *Generator) issue(ctx context.Context, tmpl *model.Template, caller Caller, student StudentRow, custom map[string]any) (*model.Certificate, error) {
	cert, err := g.certificates.Create(certificatemodel.CreateCertificateData{
		TemplateID:       tmpl.ID,
		UserID:           caller.UserID,
		StudentName:      student.StudentName,
		CourseName:       student.CourseName,
		CompletionDate:   student.CompletionDate,
		VerificationCode: g.newCode(),
		CustomData:       custom,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	pdfPath, err := g.renderer.Render(ctx, cert, tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate %s: %w", cert.ID, err)
	}

	if err := g.certificates.UpdatePdfPath(cert.ID, pdfPath); err != nil {
		return nil, fmt.Errorf("failed to store pdf path for certificate %s: %w", cert.ID, err)
	}
	cert.PdfPath = &pdfPath

	return cert, nil
}

// GenerateSingle issues one certificate from a free-form data object.
// student_name, course_name and completion_date are read from data (or
// their "Title Case" header forms); the whole object becomes custom data.
func (g *Generator) GenerateSingle(ctx context.Context, caller Caller, templateId string, data map[string]any) (*SingleResult, error) {
	if err := g.authorize(caller); err != nil {
		return nil, err
	}

	tmpl, err := g.loadTemplate(templateId, caller)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = map[string]any{}
	}
	student := StudentRow{
		StudentName:    firstString(data, model.FieldTypeStudentName, "Student Name"),
		CourseName:     firstString(data, model.FieldTypeCourseName, "Course Name"),
		CompletionDate: firstString(data, model.FieldTypeCompletionDate, "Completion Date"),
	}

	cert, err := g.issue(ctx, tmpl, caller, student, data)
	if err != nil {
		return nil, err
	}

	slog.Info("Certificate generated", "certificate_id", cert.ID, "template_id", tmpl.ID, "user_id", caller.UserID)
	return &SingleResult{Certificate: cert, DownloadURL: *cert.PdfPath}, nil
}

// GenerateBulk issues one certificate per CSV row, sequentially, and bundles
// the PDFs into a ZIP. Progress is reported as 0 of N before the first row
// and i of N after each row. The first failing row aborts the batch;
// certificates already created stay persisted.
func (g *Generator) GenerateBulk(ctx context.Context, caller Caller, templateId string, rows iter.Seq2[Row, error], progress ProgressSink) (*BulkResult, error) {
	if progress == nil {
		progress = discardProgress{}
	}

	if err := g.authorize(caller); err != nil {
		return nil, err
	}

	tmpl, err := g.loadTemplate(templateId, caller)
	if err != nil {
		return nil, err
	}

	dynamicFields := tmpl.DynamicFields()
	var students []StudentRow
	for row, err := range rows {
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		students = append(students, MapRow(row, dynamicFields))
	}
	if len(students) == 0 {
		return nil, ErrEmptyCSV
	}

	total := len(students)
	progress.Progress(0, total)

	certificates := make([]*model.Certificate, 0, total)
	pdfFiles := make([]string, 0, total)
	for i, student := range students {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		custom := make(map[string]any, len(student.CustomData))
		for k, v := range student.CustomData {
			custom[k] = v
		}

		cert, err := g.issue(ctx, tmpl, caller, student, custom)
		if err != nil {
			slog.Error("Bulk generation aborted", "row", i+1, "generated", len(certificates), "error", err)
			return nil, err
		}
		certificates = append(certificates, cert)

		if path, err := g.files.Resolve(*cert.PdfPath); err == nil {
			pdfFiles = append(pdfFiles, path)
		} else {
			slog.Warn("Generated PDF path not resolvable", "certificate_id", cert.ID, "pdf_path", *cert.PdfPath)
		}

		progress.Progress(i+1, total)
	}

	zipPath, err := g.archive(ctx, pdfFiles)
	if err != nil {
		return nil, err
	}

	slog.Info("Bulk generation completed", "template_id", tmpl.ID, "user_id", caller.UserID, "count", total, "zip", zipPath)
	return &BulkResult{Certificates: certificates, ZipPath: zipPath}, nil
}

// StreamBulk runs GenerateBulk and reports exactly one terminal outcome to sink.
func (g *Generator) StreamBulk(ctx context.Context, caller Caller, templateId string, rows iter.Seq2[Row, error], sink Sink) {
	result, err := g.GenerateBulk(ctx, caller, templateId, rows, sink)
	if err != nil {
		sink.Fail(err)
		return
	}
	sink.Done(result)
}

func archiveName(seq int64) string {
	return "certificates_bulk_" + strconv.FormatInt(seq, 10) + ".zip"
}

func (g *Generator) archive(ctx context.Context, pdfFiles []string) (string, error) {
	file, name, err := g.files.CreateUnique(archiveName, g.now().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	added, err := WriteArchive(file, pdfFiles)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write archive %s: %w", name, err)
	}
	if len(added) < len(pdfFiles) {
		slog.Warn("Archive is missing PDFs", "archive", name, "expected", len(pdfFiles), "added", len(added))
	}

	if g.mirror != nil {
		if err := g.mirror.Mirror(ctx, g.files.Path(name), name); err != nil {
			slog.Warn("Failed to mirror archive", "archive", name, "error", err)
		}
	}

	return g.files.PublicPath(name), nil
}

func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
	}
	return ""
}
