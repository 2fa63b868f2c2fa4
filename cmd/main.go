package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restycailao/CAMSHOP-sub000/cache"
	"github.com/restycailao/CAMSHOP-sub000/config"
	"github.com/restycailao/CAMSHOP-sub000/database"
	"github.com/restycailao/CAMSHOP-sub000/routes"
)

func main() {

	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()

	cache.Init(2 * time.Minute)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}
