package database

import (
	"path/filepath"
	"testing"

	"bizcard-service/pkg/config"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestOpenSQLiteMigratePingClose(t *testing.T) {
	cfg := &config.DBConfig{
		Driver:       "sqlite",
		SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
		MaxIdleConns: 2,
		MaxOpenConns: 4,
		LogLevel:     "silent",
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(db, &widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&widget{Name: "a"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Ping(db); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := Ping(db); err == nil {
		t.Fatal("expected ping to fail after close")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(&config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
