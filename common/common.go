package common

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/sunthewhat/certgen-api/type/shared"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var Config *shared.Config
var Gorm *gorm.DB
var Mongo *mongo.Database
var Redis *redis.Client
var MinIOClient *minio.Client
