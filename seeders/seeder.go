package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// КЛЮЧИК: true - обновить существующие записи из данных сидера.
// false - пропустить записи, которые уже есть в БД.
const updateIfExists = false

// SeedMenu наполняет столы, категории, блюда и модификаторы. Повторный запуск безопасен.
func SeedMenu(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Seeding tables and menu...")

	if updateIfExists {
		log.Println("    - Strategy: UPSERT")
	} else {
		log.Println("    - Strategy: skip existing rows")
	}

	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if err := seedTables(ctx, tx); err != nil {
			return err
		}
		if err := seedCategories(ctx, tx); err != nil {
			return err
		}
		if err := seedMenuItems(ctx, tx); err != nil {
			return err
		}
		return seedModifiers(ctx, tx)
	})
	if err != nil {
		log.Fatalf("❌ Menu seeding failed: %v", err)
	}
	log.Println("✅ Tables and menu seeded")
}

func seedTables(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Table 'tables'...")
	query := `INSERT INTO tables (table_number, capacity) VALUES ($1, $2) ON CONFLICT (table_number) DO NOTHING`
	if updateIfExists {
		query = `INSERT INTO tables (table_number, capacity) VALUES ($1, $2)
				 ON CONFLICT (table_number) DO UPDATE SET capacity = EXCLUDED.capacity`
	}
	for _, t := range tablesData {
		if _, err := tx.Exec(ctx, query, t.Number, t.Capacity); err != nil {
			log.Printf("Failed to seed table %d: %v", t.Number, err)
			return err
		}
	}
	return nil
}

func seedCategories(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Table 'menu_categories'...")
	query := `INSERT INTO menu_categories (name, display_order) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	if updateIfExists {
		query = `INSERT INTO menu_categories (name, display_order) VALUES ($1, $2)
				 ON CONFLICT (name) DO UPDATE SET display_order = EXCLUDED.display_order`
	}
	for _, c := range categoriesData {
		if _, err := tx.Exec(ctx, query, c.Name, c.DisplayOrder); err != nil {
			log.Printf("Failed to seed category '%s': %v", c.Name, err)
			return err
		}
	}
	return nil
}

func seedMenuItems(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Table 'menu_items'...")
	query := `INSERT INTO menu_items (category_id, name, description, price, display_order)
			  SELECT id, $2, $3, $4, $5 FROM menu_categories WHERE name = $1
			  ON CONFLICT (category_id, name) DO NOTHING`
	if updateIfExists {
		query = `INSERT INTO menu_items (category_id, name, description, price, display_order)
				 SELECT id, $2, $3, $4, $5 FROM menu_categories WHERE name = $1
				 ON CONFLICT (category_id, name) DO UPDATE
				 SET description = EXCLUDED.description, price = EXCLUDED.price, display_order = EXCLUDED.display_order`
	}
	for _, m := range menuItemsData {
		if _, err := tx.Exec(ctx, query, m.Category, m.Name, m.Description, m.Price, m.DisplayOrder); err != nil {
			log.Printf("Failed to seed menu item '%s': %v", m.Name, err)
			return err
		}
	}
	return nil
}

func seedModifiers(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Table 'modifiers'...")
	query := `INSERT INTO modifiers (category, name, price_adjustment) VALUES ($1, $2, $3)
			  ON CONFLICT (category, name) DO NOTHING`
	if updateIfExists {
		query = `INSERT INTO modifiers (category, name, price_adjustment) VALUES ($1, $2, $3)
				 ON CONFLICT (category, name) DO UPDATE SET price_adjustment = EXCLUDED.price_adjustment`
	}
	for _, m := range modifiersData {
		if _, err := tx.Exec(ctx, query, m.Category, m.Name, m.PriceAdjustment); err != nil {
			log.Printf("Failed to seed modifier '%s': %v", m.Name, err)
			return err
		}
	}
	return nil
}
