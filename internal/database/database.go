package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("🔌 DATABASE CONNECTION ATTEMPT")
	log.Printf("   📍 Database URL length: %d characters", len(dbURL))
	log.Printf("   📍 URL prefix: %s...", dbURL[:min(30, len(dbURL))])
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ DATABASE CONNECTION FAILED")
		log.Printf("   Error type: %T", err)
		log.Printf("   Error message: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ DATABASE PING FAILED")
		log.Printf("   Error message: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ DATABASE CONNECTION SUCCESSFUL")
	return db, nil
}

// Migrate creates every table and index. Statements are idempotent and run in
// order on each start.
func Migrate(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'operator' CHECK(role IN ('admin', 'operator')),
			avatar_url TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			expires_at BIGINT NOT NULL,
			revoked_at BIGINT,
			FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS drivers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			plate TEXT NOT NULL DEFAULT '',
			cnpj_cpf TEXT NOT NULL DEFAULT '',
			valor_km NUMERIC(12,2) NOT NULL DEFAULT 0,
			valor_ponto NUMERIC(12,2) NOT NULL DEFAULT 0,
			photo_url TEXT,
			status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'in_route')),
			monthly_routes INT NOT NULL DEFAULT 0,
			revenue NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS fleet (
			id TEXT PRIMARY KEY,
			plate TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			year INT,
			status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'maintenance', 'attention')),
			image_url TEXT,
			avg_consumption NUMERIC(12,2) NOT NULL DEFAULT 0,
			cost_per_km NUMERIC(12,2) NOT NULL DEFAULT 0,
			current_km NUMERIC(12,2) NOT NULL DEFAULT 0,
			maintenance_note TEXT,
			driver_id TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			origin TEXT NOT NULL DEFAULT '',
			destination TEXT NOT NULL DEFAULT '',
			value NUMERIC(12,2) NOT NULL DEFAULT 0,
			cities JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'Ativo',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS cities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			state TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'fixed' CHECK(type IN ('fixed', 'per_km')),
			value NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Drivers and routes are never deleted while freights reference them;
		// the foreign keys only back up the application-level check.
		`CREATE TABLE IF NOT EXISTS freights (
			id TEXT PRIMARY KEY,
			driver_id TEXT NOT NULL,
			route_id TEXT,
			manifesto TEXT NOT NULL DEFAULT '',
			origin TEXT NOT NULL DEFAULT '',
			destination TEXT NOT NULL DEFAULT '',
			km_inicial NUMERIC(12,2) NOT NULL DEFAULT 0,
			km_final NUMERIC(12,2) NOT NULL DEFAULT 0,
			horario_saida TEXT,
			horario_chegada TEXT,
			total_pontos INT NOT NULL DEFAULT 0,
			tolls NUMERIC(12,2) NOT NULL DEFAULT 0,
			additional_cities JSONB NOT NULL DEFAULT '[]',
			value NUMERIC(12,2) NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Pending' CHECK(status IN ('Pending', 'In Transit', 'Delivered')),
			freight_date DATE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE RESTRICT,
			FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE RESTRICT ON UPDATE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS closures (
			id TEXT PRIMARY KEY,
			driver_id TEXT NOT NULL,
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			total_value NUMERIC(12,2) NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Aberto' CHECK(status IN ('Aberto', 'Fechado')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE CASCADE,
			CHECK (period_start <= period_end)
		)`,

		`CREATE TABLE IF NOT EXISTS financial_transactions (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			type TEXT NOT NULL CHECK(type IN ('Receita', 'Despesa')),
			category TEXT NOT NULL DEFAULT '',
			date DATE,
			status TEXT NOT NULL DEFAULT 'Pendente' CHECK(status IN ('Pendente', 'Pago')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
			status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'doing', 'done')),
			responsible_id TEXT,
			due_time TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (responsible_id) REFERENCES profiles(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS calendar_events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date DATE NOT NULL,
			color TEXT NOT NULL DEFAULT '',
			description TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS fcm_tokens (
			id SERIAL PRIMARY KEY,
			profile_id TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			device_type TEXT NOT NULL CHECK(device_type IN ('web', 'ios', 'android')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_profile_id ON sessions(profile_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_freights_driver_id ON freights(driver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_freights_route_id ON freights(route_id)`,
		`CREATE INDEX IF NOT EXISTS idx_freights_freight_date ON freights(freight_date)`,
		`CREATE INDEX IF NOT EXISTS idx_freights_created_at ON freights(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_closures_driver_id ON closures(driver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_closures_period_end ON closures(period_end)`,
		`CREATE INDEX IF NOT EXISTS idx_financial_transactions_date ON financial_transactions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_responsible_id ON tasks(responsible_id)`,
		`CREATE INDEX IF NOT EXISTS idx_calendar_events_date ON calendar_events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_fcm_tokens_profile_id ON fcm_tokens(profile_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("✓ Database migrations completed")
	return nil
}

// Tables lists the persisted collections in creation order.
var Tables = []string{
	"profiles",
	"sessions",
	"drivers",
	"fleet",
	"routes",
	"cities",
	"freights",
	"closures",
	"financial_transactions",
	"tasks",
	"calendar_events",
	"fcm_tokens",
}

// CountRows returns the number of rows of each table in Tables.
func CountRows(db *sqlx.DB) (map[string]int, error) {
	counts := make(map[string]int, len(Tables))
	for _, table := range Tables {
		var n int
		if err := db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
