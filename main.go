package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sunthewhat/certgen-api/api"
	"github.com/sunthewhat/certgen-api/common/config"
	"github.com/sunthewhat/certgen-api/common/gorm"
	"github.com/sunthewhat/certgen-api/common/mongo"
	"github.com/sunthewhat/certgen-api/common/redis"
	"github.com/sunthewhat/certgen-api/common/util"
)

func main() {
	isPushDB := flag.Bool("PushDB", false, "Run database migration and seed the admin account")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	flag.Parse()
	config.LoadConfig()
	if *isPushDB {
		gorm.Push_db()
		if !*isRunAfter {
			return
		}
	}

	gorm.InitGorm()
	mongo.InitMongo()
	redis.InitRedis()
	if err := util.InitMinIO(); err != nil {
		slog.Error("Failed to initialize MinIO", "error", err)
		os.Exit(1)
	}
	api.InitFiber()
}
