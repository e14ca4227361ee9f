package database

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    login TEXT UNIQUE NOT NULL,
    password_hash BYTEA NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('cook', 'eater')),
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL DEFAULT '',
    avatar_url TEXT,
    neighborhood TEXT,
    nationality TEXT,
    dietary_preferences JSONB NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS meals (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    cook_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    dish_name TEXT NOT NULL,
    description TEXT,
    price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
    total_portions INT NOT NULL CHECK (total_portions > 0),
    remaining_portions INT NOT NULL CHECK (remaining_portions >= 0 AND remaining_portions <= total_portions),
    image_url TEXT,
    tags JSONB NOT NULL DEFAULT '[]',
    tagged BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    meal_id UUID NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
    eater_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    cook_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    status TEXT NOT NULL DEFAULT 'placed',
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ratings (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    order_id UUID NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
    cook_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    eater_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_meals_cook_id ON meals(cook_id);
CREATE INDEX IF NOT EXISTS idx_meals_tagged ON meals(tagged) WHERE NOT tagged;
CREATE INDEX IF NOT EXISTS idx_orders_eater_id ON orders(eater_id);
CREATE INDEX IF NOT EXISTS idx_orders_cook_id ON orders(cook_id);
CREATE INDEX IF NOT EXISTS idx_ratings_cook_id ON ratings(cook_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
