package shared

type Config struct {
	Environment      *bool     `yaml:"environment" validate:"required"`
	Port             *string   `yaml:"port" validate:"required"`
	BackendURL       *string   `yaml:"backend_url" validate:"required"`
	Cors             []*string `yaml:"cors" validate:"required"`
	JWTSecret        *string   `yaml:"jwt_secret" validate:"required"`
	Postgres         *string   `yaml:"postgres" validate:"required"`
	PostgresReplicas []string  `yaml:"postgres_replicas"`
	Mongo            *string   `yaml:"mongo"`
	MongoDatabase    *string   `yaml:"mongo_database"`
	Redis            *string   `yaml:"redis"`
	GeneratedDir     *string   `yaml:"generated_dir" validate:"required"`
	AssetDir         *string   `yaml:"asset_dir"`
	FontPath         *string   `yaml:"font_path"`
	IssuedBy         *string   `yaml:"issued_by" validate:"required"`
	VerifyHost       *string   `yaml:"verify_host" validate:"required"`
	MinIoEndpoint    *string   `yaml:"minio_endpoint"`
	MinIoAccessKey   *string   `yaml:"minio_access_key"`
	MinIoSecretKey   *string   `yaml:"minio_secret_key"`
	MinIoSecure      *bool     `yaml:"minio_secure"`
	BucketArchive    *string   `yaml:"bucket_archive"`
	SigningEnabled   *bool     `yaml:"signing_enabled"`
	SigningCertPath  *string   `yaml:"signing_cert_path"`
	SigningKeyPath   *string   `yaml:"signing_key_path"`
	AdminEmail       *string   `yaml:"admin_email"`
	AdminPassword    *string   `yaml:"admin_password"`
}
