// Package geocache — SQLite кэш результатов геокодинга.
//
// Координаты локации практически статичны, а Geocoding API тратит квоту
// free tier. Кэш убирает один сетевой вызов на каждый повторный запрос.
// Реализует weather.GeoCache интерфейс.
package geocache

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ilkoid/pogoda-ai/pkg/utils"
)

// Структура таблицы:
//
//	CREATE TABLE geocache (
//	    location TEXT PRIMARY KEY,
//	    lat REAL NOT NULL,
//	    lon REAL NOT NULL
//	);
const schema = `
CREATE TABLE IF NOT EXISTS geocache (
    location TEXT PRIMARY KEY,
    lat REAL NOT NULL,
    lon REAL NOT NULL
);`

// Cache — персистентный кэш location → координаты.
//
// Ключ нормализуется (trim + lower), чтобы "Paris" и " paris " делили запись.
type Cache struct {
	db *sql.DB
}

// Open открывает (или создаёт) базу кэша по указанному пути.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geocache db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create geocache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// normalizeKey приводит строку локации к каноническому ключу кэша.
func normalizeKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// Get возвращает координаты из кэша, ok=false при промахе.
func (c *Cache) Get(location string) (lat, lon float64, ok bool) {
	err := c.db.QueryRow(
		"SELECT lat, lon FROM geocache WHERE location = ?",
		normalizeKey(location),
	).Scan(&lat, &lon)
	if err == sql.ErrNoRows {
		return 0, 0, false
	}
	if err != nil {
		// Ошибка кэша — это промах, не провал lookup
		utils.Warn("Geocache query failed", "location", location, "error", err)
		return 0, 0, false
	}
	return lat, lon, true
}

// Put сохраняет координаты, перезаписывая существующую запись.
func (c *Cache) Put(location string, lat, lon float64) error {
	_, err := c.db.Exec(
		"INSERT INTO geocache (location, lat, lon) VALUES (?, ?, ?) ON CONFLICT(location) DO UPDATE SET lat = excluded.lat, lon = excluded.lon",
		normalizeKey(location), lat, lon,
	)
	if err != nil {
		return fmt.Errorf("failed to store geocache entry: %w", err)
	}
	return nil
}

// Close закрывает базу.
func (c *Cache) Close() error {
	return c.db.Close()
}
