package renderer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/certgen-api/internal/storage"
	"github.com/sunthewhat/certgen-api/type/shared/model"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func sampleCertificate() *model.Certificate {
	return &model.Certificate{
		ID:               "3f2a9c1e-0000-4000-8000-000000000000",
		StudentName:      "Ann Lee",
		CourseName:       "Go Fundamentals",
		CompletionDate:   strPtr("2024-06-01"),
		VerificationCode: "ABCD1234",
		CustomData:       datatypes.JSONMap{"grade": "A", "hours": 12},
	}
}

func TestFieldValue(t *testing.T) {
	cert := sampleCertificate()

	tests := []struct {
		name  string
		field model.TemplateField
		want  string
	}{
		{name: "static uses default", field: model.TemplateField{FieldType: model.FieldTypeStudentName, IsStatic: true, DefaultValue: strPtr("Fixed")}, want: "Fixed"},
		{name: "certificate id is short and upper", field: model.TemplateField{FieldType: model.FieldTypeCertificateID}, want: "3F2A9C1E"},
		{name: "student name", field: model.TemplateField{FieldType: model.FieldTypeStudentName}, want: "Ann Lee"},
		{name: "course name", field: model.TemplateField{FieldType: model.FieldTypeCourseName}, want: "Go Fundamentals"},
		{name: "completion date", field: model.TemplateField{FieldType: model.FieldTypeCompletionDate}, want: "2024-06-01"},
		{name: "custom string", field: model.TemplateField{FieldType: "grade"}, want: "A"},
		{name: "custom number", field: model.TemplateField{FieldType: "hours"}, want: "12"},
		{name: "missing custom falls back to default", field: model.TemplateField{FieldType: "issuer", DefaultValue: strPtr("Academy")}, want: "Academy"},
		{name: "missing custom without default", field: model.TemplateField{FieldType: "issuer"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldValue(cert, tt.field))
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#000000", 0, 0, 0},
		{"#ff8000", 255, 128, 0},
		{"#FFF", 255, 255, 255},
		{"12ab34", 0x12, 0xab, 0x34},
		{"red", 0, 0, 0},
		{"", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b := parseColor(tt.in)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}

func TestPageSize(t *testing.T) {
	bg := &background{width: 1200, height: 800}

	w, h := pageSize(&model.Template{CanvasWidth: 1000, CanvasHeight: 700}, bg)
	assert.Equal(t, []float64{1000, 700}, []float64{w, h})

	w, h = pageSize(&model.Template{}, bg)
	assert.Equal(t, []float64{1200, 800}, []float64{w, h})

	w, h = pageSize(&model.Template{}, nil)
	assert.Equal(t, []float64{defaultPageWidth, defaultPageHeight}, []float64{w, h})
}

func TestPDFRenderer_Render(t *testing.T) {
	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "uploads"), 0o755))
	writePNG(t, filepath.Join(assets, "uploads", "bg.png"), 400, 300)

	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	r := NewPDFRenderer(files, assets, "https://verify.example.com/", nil)

	tmpl := &model.Template{
		ID:                "tmpl-1",
		TemplateImagePath: "/uploads/bg.png",
		Fields: []model.TemplateField{
			{FieldType: model.FieldTypeStudentName, PositionX: 200, PositionY: 120, FontSize: 28, FontColor: "#333"},
			{FieldType: model.FieldTypeCertificateID, PositionX: 60, PositionY: 280, FontSize: 10},
			{FieldType: model.FieldTypeVerificationLink, PositionX: 350, PositionY: 250, FontSize: 12},
			{FieldType: "issuer", IsStatic: true, DefaultValue: strPtr("Académie"), PositionX: 200, PositionY: 200},
		},
	}
	cert := sampleCertificate()

	publicPath, err := r.Render(context.Background(), cert, tmpl)

	require.NoError(t, err)
	assert.Equal(t, "/generated/certificate_"+cert.ID+".pdf", publicPath)
	data, err := os.ReadFile(files.Path("certificate_" + cert.ID + ".pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, "https://verify.example.com/verify/ABCD1234", r.VerifyURL(cert.VerificationCode))
}

func TestPDFRenderer_MissingBackground(t *testing.T) {
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	r := NewPDFRenderer(files, t.TempDir(), "https://verify.example.com", nil)

	_, err = r.Render(context.Background(), sampleCertificate(), &model.Template{TemplateImagePath: "/uploads/none.png"})

	assert.ErrorContains(t, err, "template image not available")
}

func TestPDFRenderer_CancelledContext(t *testing.T) {
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	r := NewPDFRenderer(files, t.TempDir(), "https://verify.example.com", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Render(ctx, sampleCertificate(), &model.Template{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveAsset(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/assets", "uploads", "a.png"), resolveAsset("/srv/assets", "/uploads/a.png"))
	assert.Equal(t, filepath.Join("/srv/assets", "a.png"), resolveAsset("/srv/assets", "../../a.png"))
}

func TestBackgroundCache_ReusesDecodedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	writePNG(t, path, 40, 20)
	cache := newBackgroundCache()

	first, err := cache.load(path)
	require.NoError(t, err)
	second, err := cache.load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "PNG", first.imageType)
	assert.Equal(t, 40, first.width)
	assert.Equal(t, 20, first.height)
}

func nameTemplate() *model.Template {
	return &model.Template{Fields: []model.TemplateField{
		{Label: "Name", FieldType: model.FieldTypeStudentName, PositionX: 400, PositionY: 300, FontSize: 32},
	}}
}

func TestPDFRenderer_UTF8Font(t *testing.T) {
	fontPath := "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	if _, err := os.Stat(fontPath); err != nil {
		t.Skip("DejaVuSans.ttf not installed")
	}
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	r := NewPDFRenderer(files, t.TempDir(), "https://verify.example.com", nil, WithUTF8Font(fontPath))

	cert := sampleCertificate()
	cert.StudentName = "Łukasz Żółć"

	doc, err := r.Document(cert, nameTemplate())
	require.NoError(t, err)
	assert.Contains(t, string(doc), "/Type0", "text is set in an embedded unicode font")
}

func TestPDFRenderer_MissingUTF8Font(t *testing.T) {
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	missing := filepath.Join(t.TempDir(), "absent.ttf")
	r := NewPDFRenderer(files, t.TempDir(), "https://verify.example.com", nil, WithUTF8Font(missing))

	_, err = r.Document(sampleCertificate(), nameTemplate())

	assert.ErrorContains(t, err, "failed to load font")
}
