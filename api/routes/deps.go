package routes

import (
	"log/slog"
	"os"

	bulkjobmodel "github.com/sunthewhat/certgen-api/api/model/bulkJobModel"
	certificatemodel "github.com/sunthewhat/certgen-api/api/model/certificateModel"
	templatemodel "github.com/sunthewhat/certgen-api/api/model/templateModel"
	"github.com/sunthewhat/certgen-api/common"
	"github.com/sunthewhat/certgen-api/internal/cache"
	"github.com/sunthewhat/certgen-api/internal/generator"
	"github.com/sunthewhat/certgen-api/internal/renderer"
	"github.com/sunthewhat/certgen-api/internal/storage"
	"github.com/sunthewhat/certgen-api/internal/verification"
)

// Dependencies are the services shared by every route group.
type Dependencies struct {
	Certificates *certificatemodel.CertificateRepository
	Templates    *templatemodel.TemplateRepository
	Jobs         bulkjobmodel.IBulkJobRepository
	Files        *storage.Local
	Generator    *generator.Generator
	Verifier     *verification.Service
}

func newSigner() *renderer.CertificateSigner {
	cfg := common.Config
	if cfg.SigningEnabled == nil || !*cfg.SigningEnabled {
		slog.Info("PDF signing disabled in configuration")
		return renderer.DisabledSigner()
	}

	var certPath, keyPath string
	if cfg.SigningCertPath != nil {
		certPath = *cfg.SigningCertPath
	}
	if cfg.SigningKeyPath != nil {
		keyPath = *cfg.SigningKeyPath
	}

	signer, err := renderer.NewCertificateSigner(certPath, keyPath, *cfg.IssuedBy)
	if err != nil {
		slog.Warn("Failed to initialize PDF signer, signatures will be disabled", "error", err)
		return renderer.DisabledSigner()
	}
	return signer
}

// NewDependencies wires repositories and services from the global clients.
func NewDependencies(files *storage.Local) *Dependencies {
	cfg := common.Config

	certRepo := certificatemodel.NewCertificateRepository(common.Gorm)
	templateRepo := templatemodel.NewTemplateRepository(common.Gorm)

	assetDir := "."
	if cfg.AssetDir != nil && *cfg.AssetDir != "" {
		assetDir = *cfg.AssetDir
	}
	var renderOpts []renderer.Option
	if cfg.FontPath != nil && *cfg.FontPath != "" {
		if _, err := os.Stat(*cfg.FontPath); err != nil {
			slog.Warn("Configured font not readable, falling back to Helvetica", "font_path", *cfg.FontPath, "error", err)
		} else {
			renderOpts = append(renderOpts, renderer.WithUTF8Font(*cfg.FontPath))
		}
	}
	pdfRenderer := renderer.NewPDFRenderer(files, assetDir, *cfg.VerifyHost, newSigner(), renderOpts...)

	var opts []generator.Option
	if common.MinIOClient != nil {
		opts = append(opts, generator.WithMirror(storage.NewMinIOMirror(common.MinIOClient, *cfg.BucketArchive)))
	}
	gen := generator.New(templateRepo, certRepo, pdfRenderer, files, opts...)

	var verifyCache cache.Cache
	if common.Redis != nil {
		verifyCache = cache.NewRedisCache(common.Redis)
	} else {
		verifyCache = cache.NewMemoryCache()
	}

	var jobs bulkjobmodel.IBulkJobRepository
	if common.Mongo != nil {
		jobs = bulkjobmodel.NewBulkJobRepository(common.Mongo)
	}

	return &Dependencies{
		Certificates: certRepo,
		Templates:    templateRepo,
		Jobs:         jobs,
		Files:        files,
		Generator:    gen,
		Verifier:     verification.NewService(certRepo, verifyCache, *cfg.IssuedBy),
	}
}
