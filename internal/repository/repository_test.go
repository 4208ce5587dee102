package repository

import (
	"context"
	"errors"
	"testing"

	"bizcard-service/internal/biznumber"
	"bizcard-service/internal/model"
	"bizcard-service/pkg/config"
	"bizcard-service/pkg/database"

	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: "file:repo_" + t.Name() + "?mode=memory&cache=shared",
		LogLevel:   "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db, model.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newUser(email string) *model.User {
	return &model.User{
		Name:       model.Name{First: "Ada", Last: "Lovelace"},
		Email:      email,
		Phone:      "0501234567",
		Password:   "hash",
		Address:    model.Address{Country: "US", City: "NY", Street: "Main", HouseNumber: "1"},
		IsBusiness: true,
	}
}

func newCard(owner string) *model.Card {
	r := &model.CardRequest{
		Title:       "Joe's Shop",
		Subtitle:    "Best shop",
		Description: "A fine shop",
		Address:     model.Address{Country: "US", City: "NY", Street: "Main", HouseNumber: "1"},
		Email:       "joe@x.com",
		Phone:       "1234567890",
	}
	return r.ToCard(owner)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(setupDB(t))

	first := newUser("a@x.com")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := newUser("a@x.com")
	second.Name.First = "Other"
	if err := repo.Create(ctx, second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}

	got, err := repo.ByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.ID != first.ID || got.Name.First != "Ada" {
		t.Fatalf("first user changed: %+v", got)
	}
}

func TestUserRepoUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(setupDB(t))

	u := newUser("a@x.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.SetBusiness(ctx, u.ID, false)
	if err != nil {
		t.Fatalf("set business: %v", err)
	}
	if updated.IsBusiness {
		t.Fatal("isBusiness still true")
	}

	taken, err := repo.EmailTaken(ctx, "a@x.com", u.ID)
	if err != nil || taken {
		t.Fatalf("own email reported taken: %v %v", taken, err)
	}
	taken, _ = repo.EmailTaken(ctx, "a@x.com", "someone-else")
	if !taken {
		t.Fatal("email should be taken for another user")
	}

	if _, err := repo.Update(ctx, "missing", map[string]interface{}{"phone": "123456789"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("update missing: %v", err)
	}

	deleted, err := repo.Delete(ctx, u.ID)
	if err != nil || deleted.ID != u.ID {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.ByID(ctx, u.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	users, err := repo.List(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("list after delete: %d %v", len(users), err)
	}
}

func TestCardRepoAssignsDistinctBizNumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(setupDB(t), nil)

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		c := newCard("owner")
		c.BizNumber = 42
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if !biznumber.InRange(c.BizNumber) || seen[c.BizNumber] {
			t.Fatalf("bad bizNumber %d", c.BizNumber)
		}
		seen[c.BizNumber] = true
	}

	cards, err := repo.List(ctx)
	if err != nil || len(cards) != 50 {
		t.Fatalf("list: %d %v", len(cards), err)
	}
}

func TestCardRepoCreateRetriesAndExhausts(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	fixed := &biznumber.Generator{MaxAttempts: 3, Int64N: func(int64) int64 { return 0 }}
	repo := NewCardRepo(db, fixed)

	first := newCard("owner")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.BizNumber != biznumber.Min {
		t.Fatalf("bizNumber = %d", first.BizNumber)
	}

	err := repo.Create(ctx, newCard("owner"))
	if !errors.Is(err, biznumber.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	cards, _ := repo.List(ctx)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}

	var found model.Card
	if err := db.First(&found, "biz_number = ?", biznumber.Min).Error; err != nil || found.ID != first.ID {
		t.Fatalf("by bizNumber: %v", err)
	}
}

func TestCardRepoToggleLikeTwiceRestores(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(setupDB(t), nil)

	c := newCard("owner")
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}

	liked, err := repo.ToggleLike(ctx, c.ID, "fan")
	if err != nil || !liked.LikedByUser("fan") || len(liked.LikedBy) != 1 {
		t.Fatalf("first toggle: %v %v", liked, err)
	}
	unliked, err := repo.ToggleLike(ctx, c.ID, "fan")
	if err != nil || unliked.LikedByUser("fan") || len(unliked.LikedBy) != 0 {
		t.Fatalf("second toggle: %v %v", unliked, err)
	}

	if _, err := repo.ToggleLike(ctx, "missing", "fan"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("toggle on missing card: %v", err)
	}
}

func TestCardRepoUpdateDeleteAndByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(setupDB(t), nil)

	mine := newCard("me")
	other := newCard("you")
	for _, c := range []*model.Card{mine, other} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	own, err := repo.ByUser(ctx, "me")
	if err != nil || len(own) != 1 || own[0].ID != mine.ID {
		t.Fatalf("by user: %v %v", own, err)
	}

	req := &model.CardRequest{Title: "New title", Subtitle: "s", Description: "d", Email: "e@x.com", Phone: "123456789"}
	updated, err := repo.Update(ctx, mine.ID, req.Columns())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New title" || updated.BizNumber != mine.BizNumber || updated.UserID != "me" {
		t.Fatalf("update result: %+v", updated)
	}

	if _, err := repo.ToggleLike(ctx, mine.ID, "fan"); err != nil {
		t.Fatalf("like: %v", err)
	}
	deleted, err := repo.Delete(ctx, mine.ID)
	if err != nil || !deleted.LikedByUser("fan") {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	if _, err := repo.ByID(ctx, mine.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.Delete(ctx, mine.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}
