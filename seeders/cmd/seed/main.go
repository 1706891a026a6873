package main

import (
	"context"
	"flag"
	"log"

	"restaurant-pos/internal/repositories"
	"restaurant-pos/internal/services"
	"restaurant-pos/migrations"
	"restaurant-pos/pkg/config"
	"restaurant-pos/pkg/database/postgresql"
	applogger "restaurant-pos/pkg/logger"
	"restaurant-pos/seeders"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 Database seeders                            ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "Apply migrations before seeding")
	runMenu := flag.Bool("menu", false, "Seed tables, categories, menu items and modifiers")
	runAll := flag.Bool("all", false, "Run everything (same as -migrate -menu)")

	flag.Parse()

	if !*runMigrate && !*runMenu && !*runAll {
		log.Println("❌ No seeder selected.")
		log.Println("")
		log.Println("Flags:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Examples:")
		log.Println("  go run ./seeders/cmd/seed -menu")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runMigrate {
		if err := migrations.Up(context.Background(), dbPool); err != nil {
			log.Fatalf("❌ Migrations failed: %v", err)
		}
		log.Println("✅ Migrations applied")
		log.Println("======================================================")
	}

	if *runAll || *runMenu {
		seeders.SeedMenu(dbPool)
		invalidateMenuCache(cfg, dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Done.")
	log.Println("======================================================")
}

// invalidateMenuCache: запущенный сервер иначе отдавал бы старое меню до истечения TTL.
func invalidateMenuCache(cfg *config.Config, dbPool *pgxpool.Pool) {
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password})
	defer redisClient.Close()

	logger := applogger.NewLogger(cfg.Log.File)
	menu := services.NewMenuService(
		repositories.NewTableRepository(dbPool, logger),
		repositories.NewMenuRepository(dbPool, logger),
		repositories.NewRedisCacheRepository(redisClient),
		cfg.Cache.MenuTTL,
		logger,
	)
	if err := menu.InvalidateCache(context.Background()); err != nil {
		log.Printf("⚠️  Menu cache not cleared (entries expire in %s): %v", cfg.Cache.MenuTTL, err)
		return
	}
	log.Println("✅ Menu cache cleared")
}
