package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPublicUserOmitsSecrets(t *testing.T) {
	u := &User{
		ID:       "u1",
		Name:     Name{First: "Ada", Last: "Lovelace"},
		Email:    "ada@x.com",
		Password: "$2a$12$hash",
		IsAdmin:  true,
	}

	for _, v := range []interface{}{u.Public(), u} {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(raw), "password") || strings.Contains(string(raw), "hash") {
			t.Fatalf("password leaked: %s", raw)
		}
	}

	raw, _ := json.Marshal(u.Public())
	if strings.Contains(string(raw), "isAdmin") {
		t.Fatalf("isAdmin leaked: %s", raw)
	}
}

func TestRegisterRequestDefaults(t *testing.T) {
	r := &RegisterRequest{Email: "a@x.com", Address: Address{Country: "US"}}
	u := r.ToUser("hash")

	if !u.IsBusiness || u.IsAdmin {
		t.Fatalf("defaults: isBusiness=%v isAdmin=%v", u.IsBusiness, u.IsAdmin)
	}
	if u.Address.State != NotDefined || u.Address.Zip != NotDefined {
		t.Fatalf("address defaults not applied: %+v", u.Address)
	}
	if u.Password != "hash" {
		t.Fatalf("password = %q", u.Password)
	}

	no := false
	r.IsBusiness = &no
	if r.ToUser("hash").IsBusiness {
		t.Fatal("explicit isBusiness=false ignored")
	}
}

func TestCardRequestDefaults(t *testing.T) {
	r := &CardRequest{Title: "Joe's Shop", BizNumber: json.RawMessage("42")}
	c := r.ToCard("owner")

	if c.Image != DefaultCardImage() {
		t.Fatalf("image = %+v", c.Image)
	}
	if c.Web != NotDefined {
		t.Fatalf("web = %q", c.Web)
	}
	if c.BizNumber != 0 || c.UserID != "owner" {
		t.Fatalf("bizNumber=%d user_id=%q", c.BizNumber, c.UserID)
	}

	r.Image = &Image{URL: "https://img.example.com/a.png", Alt: "a"}
	if got := r.ToCard("owner").Image.URL; got != "https://img.example.com/a.png" {
		t.Fatalf("supplied image replaced: %q", got)
	}

	r.Image = &Image{Alt: "storefront"}
	if got := r.ToCard("owner").Image; got != (Image{Alt: "storefront"}) {
		t.Fatalf("alt-only image = %+v", got)
	}
	cols := r.Columns()
	if cols["image_url"] != "" || cols["image_alt"] != "storefront" {
		t.Fatalf("alt-only image columns = %v %v", cols["image_url"], cols["image_alt"])
	}
}

func TestCardColumnsAllowList(t *testing.T) {
	cols := (&CardRequest{Title: "t"}).Columns()
	for _, k := range []string{"biz_number", "user_id", "id", "likes"} {
		if _, ok := cols[k]; ok {
			t.Errorf("column %q must not be mutable", k)
		}
	}
	if cols["image_url"] != DefaultCardImageURL {
		t.Errorf("image_url = %v", cols["image_url"])
	}
}

func TestUserColumnsAllowList(t *testing.T) {
	cols := (&UserUpdateRequest{Email: "a@x.com"}).Columns()
	for _, k := range []string{"is_admin", "password", "id", "is_business"} {
		if _, ok := cols[k]; ok {
			t.Errorf("column %q must not be present", k)
		}
	}
	yes := true
	cols = (&UserUpdateRequest{IsBusiness: &yes}).Columns()
	if cols["is_business"] != true {
		t.Errorf("is_business = %v", cols["is_business"])
	}
}

func TestSyncLikes(t *testing.T) {
	c := &Card{Likes: []CardLike{{CardID: "c", UserID: "u1"}, {CardID: "c", UserID: "u2"}}}
	if err := c.AfterFind(nil); err != nil {
		t.Fatal(err)
	}
	if !c.LikedByUser("u2") || c.LikedByUser("u3") {
		t.Fatalf("likes = %v", c.LikedBy)
	}

	empty := &Card{}
	_ = empty.AfterCreate(nil)
	raw, _ := json.Marshal(empty)
	if !strings.Contains(string(raw), `"likes":[]`) {
		t.Fatalf("likes should serialize as an empty array: %s", raw)
	}
}
