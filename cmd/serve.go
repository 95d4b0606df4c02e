package cmd

import (
	"context"
	"strconv"
	"strings"
	"time"

	"keepsake/config"
	"keepsake/db"
	"keepsake/gallery"
	"keepsake/handlers"
	"keepsake/logger"
	"keepsake/models"
	"keepsake/storage"
	"keepsake/sweet"
	"keepsake/utils"
	"keepsake/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the public gallery API and the admin endpoints. This is also what runs without a command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func bucketFromConfig() (*storage.Bucket, error) {
	storageType, err := storage.ParseStorageType(config.STORAGE_TYPE)
	if err != nil {
		return nil, err
	}
	bucket := &storage.Bucket{
		Name:        config.STORAGE_BUCKET,
		StorageType: storageType,
		Endpoint:    config.STORAGE_ENDPOINT,
		Region:      config.STORAGE_REGION,
		S3Key:       config.STORAGE_KEY,
		S3Secret:    config.STORAGE_SECRET,
		UseSSL:      config.STORAGE_USE_SSL,
		PublicURL:   config.PUBLIC_URL,
	}
	if storageType == storage.StorageTypeFile {
		bucket.Path = config.STORAGE_PATH
	}
	return bucket, nil
}

func openStorage(ctx context.Context) (storage.StorageAPI, error) {
	bucket, err := bucketFromConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewStorage(bucket)
	if err != nil {
		return nil, err
	}
	if minio, ok := store.(*storage.MinioStorage); ok {
		if err = minio.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}
	logger.Info("storage ready",
		logger.String("type", bucket.StorageType.String()),
		logger.String("bucket", bucket.Name),
	)
	return store, nil
}

func newRouter(site *web.Site, admin *handlers.Admin) *gin.Engine {
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	origins := config.CORSOrigins()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_SECRET))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/storage/", "/admin/ws"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, object serving overrides that

	site.Register(router)
	admin.Register(router)
	if disk, ok := admin.Storage.(*storage.DiskStorage); ok {
		maxAge, _ := strconv.Atoi(strings.TrimPrefix(config.CACHE_CONTROL, "max-age="))
		objects := router.Group("/storage", (&utils.CacheRouter{CacheTime: maxAge, Public: true}).Handler())
		objects.GET("/*path", web.ServeStorage(disk))
	}
	return router
}

func serve(ctx context.Context) error {
	if err := openDB(); err != nil {
		return err
	}
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	location, err := sweet.Location(config.DAY_TIMEZONE, config.DAY_LAT, config.DAY_LONG)
	if err != nil {
		return err
	}
	logger.Info("daily note zone", logger.String("zone", location.String()))

	albums := models.AlbumTable{DB: db.Instance}
	photos := models.PhotoTable{DB: db.Instance}
	messages := models.SweetMessageTable{DB: db.Instance}

	manager := gallery.NewManager(albums, photos, store,
		gallery.WithLogger(logger.L()),
		gallery.WithCacheControl(config.CACHE_CONTROL),
	)
	if err = manager.Refresh(ctx); err != nil {
		logger.Warn("album list not loaded", logger.ErrorField(err))
	}
	catalog := sweet.NewCatalog(messages, logger.L())
	if err = catalog.Refresh(ctx); err != nil {
		logger.Warn("sweet messages not loaded", logger.ErrorField(err))
	}

	maxDimension := 0
	if config.MAX_IMAGE_DIMENSION > 0 {
		maxDimension = config.MAX_IMAGE_DIMENSION
	}
	admin := &handlers.Admin{
		Gallery:           manager,
		Messages:          catalog,
		Storage:           store,
		Feed:              handlers.NewStatusFeed(),
		MaxImageDimension: uint(maxDimension),
	}
	site := &web.Site{
		Albums:   albums,
		Photos:   photos,
		Messages: messages,
		Storage:  store,
		Picker:   sweet.NewPicker(),
		Location: location,
	}
	router := newRouter(site, admin)

	if config.TLS_DOMAINS != "" {
		logger.Info("listening with TLS", logger.String("domains", config.TLS_DOMAINS))
		return autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	}
	logger.Info("listening", logger.String("address", config.BIND_ADDRESS))
	return router.Run(config.BIND_ADDRESS)
}
