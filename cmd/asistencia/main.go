package main

import (
	"context"
	"database/sql"

	adminApp "github.com/davicafu/asistencia-cultural/internal/admin/application"
	adminDomain "github.com/davicafu/asistencia-cultural/internal/admin/domain"
	adminHttp "github.com/davicafu/asistencia-cultural/internal/admin/infra/inbound/http"
	adminRepo "github.com/davicafu/asistencia-cultural/internal/admin/infra/outbound/db/mongodb"
	asistenciaApp "github.com/davicafu/asistencia-cultural/internal/asistencia/application"
	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
	asistenciaHttp "github.com/davicafu/asistencia-cultural/internal/asistencia/infra/inbound/http"
	asistenciaClickhouse "github.com/davicafu/asistencia-cultural/internal/asistencia/infra/outbound/analytics/clickhouse"
	asistenciaRepo "github.com/davicafu/asistencia-cultural/internal/asistencia/infra/outbound/db/mongodb"
	asistenciaEspejo "github.com/davicafu/asistencia-cultural/internal/asistencia/infra/outbound/db/sqlite"
	config "github.com/davicafu/asistencia-cultural/internal/config"
	eventoApp "github.com/davicafu/asistencia-cultural/internal/evento/application"
	eventoHttp "github.com/davicafu/asistencia-cultural/internal/evento/infra/inbound/http"
	eventoRepo "github.com/davicafu/asistencia-cultural/internal/evento/infra/outbound/db/mongodb"
	inscripcionApp "github.com/davicafu/asistencia-cultural/internal/inscripcion/application"
	inscripcionHttp "github.com/davicafu/asistencia-cultural/internal/inscripcion/infra/inbound/http"
	inscripcionRepo "github.com/davicafu/asistencia-cultural/internal/inscripcion/infra/outbound/db/mongodb"
	sharedMongo "github.com/davicafu/asistencia-cultural/internal/shared/infra/db/mongodb"
	infraEvents "github.com/davicafu/asistencia-cultural/internal/shared/infra/events"
	infraRelayer "github.com/davicafu/asistencia-cultural/internal/shared/infra/relayer"
	sharedBus "github.com/davicafu/asistencia-cultural/internal/shared/platform/bus"
	platformCache "github.com/davicafu/asistencia-cultural/internal/shared/platform/cache"
	usuarioApp "github.com/davicafu/asistencia-cultural/internal/usuario/application"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	usuarioHttp "github.com/davicafu/asistencia-cultural/internal/usuario/infra/inbound/http"
	usuarioMongo "github.com/davicafu/asistencia-cultural/internal/usuario/infra/outbound/db/mongodb"
	usuarioPostgres "github.com/davicafu/asistencia-cultural/internal/usuario/infra/outbound/db/postgres"

	cacheInfra "github.com/davicafu/asistencia-cultural/internal/shared/infra/cache"
	"github.com/davicafu/asistencia-cultural/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ---------------- Main ----------------
func main() {
	logger.Init()
	log := logger.Logger()
	defer log.Sync()

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- MongoDB ----------------
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	asistenciaMongo, err := asistenciaRepo.NewAsistenciaRepoMongoDB(ctx, client, cfg.MongoDB)
	if err != nil {
		log.Fatal("failed to initialize attendance repository", zap.Error(err))
	}

	eventoMongo, err := eventoRepo.NewEventoRepoMongoDB(ctx, client, cfg.MongoDB)
	if err != nil {
		log.Fatal("failed to initialize event repository", zap.Error(err))
	}

	inscripcionMongo, err := inscripcionRepo.NewInscripcionRepoMongoDB(ctx, client, cfg.MongoDB)
	if err != nil {
		log.Fatal("failed to initialize enrollment repository", zap.Error(err))
	}

	adminMongo, err := adminRepo.NewAdminRepoMongoDB(ctx, client, cfg.MongoDB)
	if err != nil {
		log.Fatal("failed to initialize admin repository", zap.Error(err))
	}
	encargadoMongo := adminRepo.NewEncargadoRepoMongoDB(client, cfg.MongoDB)
	categoriaMongo := adminRepo.NewCategoriaRepoMongoDB(client, cfg.MongoDB)

	// El repositorio de usuarios admite backend alternativo en Postgres;
	// el resto de contextos permanece en MongoDB.
	var usuarioRepository usuarioDomain.UsuarioRepository
	if cfg.DBBackend == "postgres" {
		pgDB, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open Postgres", zap.Error(err))
		}
		defer pgDB.Close()

		if err := pgDB.PingContext(ctx); err != nil {
			log.Fatal("failed to ping Postgres", zap.Error(err))
		}

		usuarioRepository = usuarioPostgres.NewUsuarioRepoPostgres(pgDB)
		log.Info("✅ Perfiles de usuario en Postgres")
	} else {
		repo, err := usuarioMongo.NewUsuarioRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			log.Fatal("failed to initialize user repository", zap.Error(err))
		}
		usuarioRepository = repo
	}

	// ---------------- Espejo local (SQLite) ----------------
	var espejo asistenciaDomain.EspejoLocal
	espejoDB, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		log.Warn("⚠️ SQLite no disponible, sin espejo local", zap.Error(err))
	} else {
		defer espejoDB.Close()

		espejoSQLite := asistenciaEspejo.NewEspejoSQLite(espejoDB)
		if err := espejoSQLite.InitEsquema(ctx); err != nil {
			log.Warn("⚠️ No se pudo inicializar el espejo local", zap.Error(err))
		} else {
			espejo = espejoSQLite
			log.Info("✅ Espejo local de asistencias habilitado", zap.String("path", cfg.SQLitePath))
		}
	}

	// ---------------- Cache ----------------
	var cacheInstance platformCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = cacheInfra.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = cacheInfra.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Analítica (ClickHouse) ----------------
	var analitica asistenciaDomain.RegistroAnalitico
	if cfg.ClickHouseAddr != "" {
		chRepo, err := asistenciaClickhouse.NewAsistenciaAnalyticsRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, sin exportación analítica", zap.Error(err))
		} else {
			analitica = chRepo
			log.Info("✅ ClickHouse conectado, analítica habilitada")
		}
	}

	// --------------- Servicios --------------
	usuarioService := usuarioApp.NewUsuarioService(usuarioRepository, asistenciaMongo, cacheInstance, log)
	asistenciaService := asistenciaApp.NewAsistenciaService(asistenciaMongo, usuarioRepository, espejo, analitica, cacheInstance, log)
	eventoService := eventoApp.NewEventoService(eventoMongo, usuarioRepository, cacheInstance, log)
	inscripcionService := inscripcionApp.NewInscripcionService(inscripcionMongo, usuarioRepository, log)
	adminService := adminApp.NewAdminService(
		adminDomain.Credenciales{Usuario: cfg.SuperAdminUsuario, Password: cfg.SuperAdminPassword},
		adminMongo, encargadoMongo, categoriaMongo, usuarioRepository, log,
	)

	// ---------------- Events ---------------
	var eventPublisher sharedBus.EventBus

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")

		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   asistenciaDomain.AsistenciaTopic,
		})
		defer writer.Close()

		eventPublisher = infraEvents.NewKafkaPublisher(writer, log)
	} else {
		log.Info("⚡️Usando bus de eventos en memoria (canales de Go)")
		eventPublisher = infraEvents.NewInMemoryEventBus(asistenciaDomain.AsistenciaTopic)
	}

	// ------------ Outbox Worker ------------
	outboxRepo := sharedMongo.NewOutboxRepoMongoDB(client, cfg.MongoDB)
	outboxWorker := infraRelayer.NewOutboxWorker(outboxRepo, eventPublisher, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go outboxWorker.Start(ctx)

	// ---------------- HTTP ----------------
	usuarioHandler := usuarioHttp.NewUsuarioHandler(usuarioService)
	asistenciaHandler := asistenciaHttp.NewAsistenciaHandler(asistenciaService)
	eventoHandler := eventoHttp.NewEventoHandler(eventoService)
	inscripcionHandler := inscripcionHttp.NewInscripcionHandler(inscripcionService)
	adminHandler := adminHttp.NewAdminHandler(adminService)

	router := gin.Default()
	usuarioHttp.RegisterUsuarioRoutes(router, usuarioHandler)
	asistenciaHttp.RegisterAsistenciaRoutes(router, asistenciaHandler)
	eventoHttp.RegisterEventoRoutes(router, eventoHandler)
	inscripcionHttp.RegisterInscripcionRoutes(router, inscripcionHandler)
	adminHttp.RegisterAdminRoutes(router, adminHandler, adminService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
