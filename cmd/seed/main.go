// seed crea el esquema y puebla los datos iniciales: catálogo de parts con sus
// cantidades de arranque, órdenes de trabajo de ejemplo, configuración por
// defecto y un usuario admin.
//
// Uso: go run ./cmd/seed
// El admin inicial se controla con SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appsettings "github.com/mcalvo/bracket-tracker-api/internal/application/settings"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/catalog"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/postgres"
	"github.com/mcalvo/bracket-tracker-api/pkg/config"
	"github.com/mcalvo/bracket-tracker-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	partRepo := postgres.NewPartRepository(pool)
	seedParts := catalog.SeedParts()
	for _, part := range seedParts {
		p := part
		if err := partRepo.Upsert(&p); err != nil {
			log.Fatal().Err(err).Str("part", p.PartNumber).Msg("sembrar part")
		}
	}
	log.Info().Int("parts", len(seedParts)).Msg("catálogo sembrado")

	seedWorkOrders(postgres.NewWorkOrderRepository(pool), log)
	seedSettings(postgres.NewSettingsRepository(pool), cfg, log)
	seedAdmin(postgres.NewUserRepository(pool), log)

	log.Info().Msg("seed completado")
}

// seedWorkOrders crea órdenes de ejemplo solo si la tabla está vacía.
func seedWorkOrders(repo *postgres.WorkOrderRepo, log *logger.Logger) {
	existing, err := repo.List("")
	if err != nil {
		log.Fatal().Err(err).Msg("listar órdenes")
	}
	if len(existing) > 0 {
		log.Info().Int("orders", len(existing)).Msg("órdenes ya existentes, se omiten")
		return
	}
	samples := []entity.WorkOrder{
		{OrderNumber: "WO-001", SetType: "H6", RequiredSets: 3},
		{OrderNumber: "WO-002", SetType: "H6", RequiredSets: 2, IncludeModifier: true},
		{OrderNumber: "WO-003", SetType: "H7-282", RequiredSets: 1},
		{OrderNumber: "WO-004", SetType: "H9", RequiredSets: 4},
	}
	for _, sample := range samples {
		order := sample
		order.ID = uuid.New().String()
		order.Status = entity.WorkOrderActive
		order.CreatedAt = time.Now()
		order.CreatedBy = "seed"
		if err := repo.Create(&order); err != nil {
			log.Fatal().Err(err).Str("order", order.OrderNumber).Msg("sembrar orden")
		}
	}
	log.Info().Int("orders", len(samples)).Msg("órdenes de ejemplo creadas")
}

// seedSettings persiste la configuración inicial solo si no existe.
func seedSettings(repo *postgres.SettingsRepo, cfg *config.Config, log *logger.Logger) {
	stored, err := repo.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("leer configuración")
	}
	if stored != nil {
		log.Info().Msg("configuración ya existente, se omite")
		return
	}
	low := int64(cfg.Stock.LowThreshold)
	critical := int64(cfg.Stock.CriticalThreshold)
	if low <= 0 {
		low = appsettings.DefaultLowThreshold
	}
	if critical <= 0 {
		critical = appsettings.DefaultCriticalThreshold
	}
	err = repo.Save(&entity.StockSettings{
		LowStockThreshold: low,
		CriticalThreshold: critical,
		WebhookURL:        cfg.Notify.WebhookURL,
		UpdatedAt:         time.Now(),
		UpdatedBy:         "seed",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar configuración")
	}
	log.Info().Int64("low", low).Int64("critical", critical).Msg("configuración inicial creada")
}

// seedAdmin crea el usuario admin inicial si no existe.
func seedAdmin(repo *postgres.UserRepo, log *logger.Logger) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		log.Warn().Msg("SEED_ADMIN_PASSWORD no definido, se usa el password por defecto")
	}
	existing, err := repo.GetByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("admin ya existente, se omite")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}
	now := time.Now()
	err = repo.Create(&entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("email", email).Msg("admin inicial creado")
}
