package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

// A4 landscape in points, used when neither the template nor its image
// provides a page size.
const (
	defaultPageWidth  = 841.89
	defaultPageHeight = 595.28
	minQRSide         = 48.0
	textFont          = "Helvetica"
	utf8Font          = "CertificateUTF8"
)

// Files places rendered documents in the generated directory.
type Files interface {
	Path(name string) string
	PublicPath(name string) string
}

type PDFRenderer struct {
	files       Files
	assetDir    string
	verifyHost  string
	signer      *CertificateSigner
	backgrounds *backgroundCache
	fontPath    string
}

type Option func(*PDFRenderer)

// WithUTF8Font renders text with the TrueType font at path. Without it text
// uses the core Helvetica font, which only covers cp1252.
func WithUTF8Font(path string) Option {
	return func(r *PDFRenderer) {
		r.fontPath = path
	}
}

func NewPDFRenderer(files Files, assetDir, verifyHost string, signer *CertificateSigner, opts ...Option) *PDFRenderer {
	if signer == nil {
		signer = DisabledSigner()
	}
	r := &PDFRenderer{
		files:       files,
		assetDir:    assetDir,
		verifyHost:  strings.TrimRight(verifyHost, "/"),
		signer:      signer,
		backgrounds: newBackgroundCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// VerifyURL is the public verification page encoded into QR fields.
func (r *PDFRenderer) VerifyURL(code string) string {
	return r.verifyHost + "/verify/" + code
}

// Render writes certificate_<id>.pdf and returns its public path.
func (r *PDFRenderer) Render(ctx context.Context, cert *model.Certificate, tmpl *model.Template) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := r.Document(cert, tmpl)
	if err != nil {
		return "", err
	}

	if r.signer.IsEnabled() {
		signed, err := r.signer.SignPDF(doc, cert.ID, cert.VerificationCode)
		if err != nil {
			slog.Warn("Failed to sign PDF, keeping unsigned version", "cert_id", cert.ID, "error", err)
		} else {
			doc = signed
		}
	}

	name := "certificate_" + cert.ID + ".pdf"
	if err := os.WriteFile(r.files.Path(name), doc, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return r.files.PublicPath(name), nil
}

// Document lays out the template background and every field of tmpl for cert.
func (r *PDFRenderer) Document(cert *model.Certificate, tmpl *model.Template) ([]byte, error) {
	var bg *background
	if tmpl.TemplateImagePath != "" {
		loaded, err := r.backgrounds.load(resolveAsset(r.assetDir, tmpl.TemplateImagePath))
		if err != nil {
			return nil, err
		}
		bg = loaded
	}

	width, height := pageSize(tmpl, bg)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("certgen-api", true)
	pdf.SetTitle("Certificate "+cert.ShortID(), true)
	pdf.AddPage()

	if bg != nil {
		opts := gofpdf.ImageOptions{ImageType: bg.imageType}
		pdf.RegisterImageOptionsReader("background", opts, bytes.NewReader(bg.data))
		pdf.ImageOptions("background", 0, 0, width, height, false, opts, 0, "")
	}

	family := textFont
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if r.fontPath != "" {
		pdf.AddUTF8Font(utf8Font, "", r.fontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", r.fontPath, err)
		}
		family = utf8Font
		translate = func(s string) string { return s }
	}
	for i, field := range tmpl.Fields {
		if field.FieldType == model.FieldTypeVerificationLink && !field.IsStatic {
			if err := r.placeQR(pdf, field, cert, i); err != nil {
				return nil, err
			}
			continue
		}

		value := FieldValue(cert, field)
		if value == "" {
			continue
		}
		placeText(pdf, family, field, translate(value))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func pageSize(tmpl *model.Template, bg *background) (float64, float64) {
	if tmpl.CanvasWidth > 0 && tmpl.CanvasHeight > 0 {
		return float64(tmpl.CanvasWidth), float64(tmpl.CanvasHeight)
	}
	if bg != nil && bg.width > 0 && bg.height > 0 {
		return float64(bg.width), float64(bg.height)
	}
	return defaultPageWidth, defaultPageHeight
}

// FieldValue is the text printed for field on cert.
func FieldValue(cert *model.Certificate, field model.TemplateField) string {
	if field.IsStatic {
		return field.Default()
	}

	switch field.FieldType {
	case model.FieldTypeCertificateID:
		return cert.ShortID()
	case model.FieldTypeStudentName:
		return cert.StudentName
	case model.FieldTypeCourseName:
		return cert.CourseName
	case model.FieldTypeCompletionDate:
		if cert.CompletionDate != nil {
			return *cert.CompletionDate
		}
		return ""
	}

	if v, ok := cert.CustomValue(field.FieldType); ok && v != "" {
		return v
	}
	return field.Default()
}

// placeText centres value horizontally and vertically on the field position.
func placeText(pdf *gofpdf.Fpdf, family string, field model.TemplateField, value string) {
	size := field.FontSize
	if size <= 0 {
		size = 24
	}
	red, green, blue := parseColor(field.FontColor)

	pdf.SetFont(family, "", size)
	pdf.SetTextColor(red, green, blue)
	textWidth := pdf.GetStringWidth(value)
	pdf.Text(field.PositionX-textWidth/2, field.PositionY+size*0.35, value)
}

func (r *PDFRenderer) placeQR(pdf *gofpdf.Fpdf, field model.TemplateField, cert *model.Certificate, index int) error {
	png, err := qrcode.Encode(r.VerifyURL(cert.VerificationCode), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to encode verification QR: %w", err)
	}

	side := field.FontSize * 4
	if side < minQRSide {
		side = minQRSide
	}

	name := "qr-" + strconv.Itoa(index)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, field.PositionX-side/2, field.PositionY-side/2, side, side, false, opts, 0, "")
	return nil
}

// parseColor accepts "#RRGGBB" and "#RGB"; anything else is black.
func parseColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
