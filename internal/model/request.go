package model

import "encoding/json"

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Name       Name    `json:"name"`
	Email      string  `json:"email" validate:"required,min=6,max=255,email"`
	Phone      string  `json:"phone" validate:"required,phone"`
	Password   string  `json:"password" validate:"required,min=6,max=255"`
	Address    Address `json:"address"`
	Image      Image   `json:"image"`
	IsBusiness *bool   `json:"isBusiness"`
}

// ToUser builds a new user from the request. isAdmin is never taken from
// the client.
func (r *RegisterRequest) ToUser(passwordHash string) *User {
	u := &User{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Password:   passwordHash,
		Address:    r.Address,
		Image:      r.Image,
		IsBusiness: true,
	}
	if r.IsBusiness != nil {
		u.IsBusiness = *r.IsBusiness
	}
	u.Address.ApplyDefaults()
	return u
}

// UserUpdateRequest is the body of PUT /users/:id.
type UserUpdateRequest struct {
	Name       Name    `json:"name"`
	Email      string  `json:"email" validate:"required,min=6,max=255,email"`
	Phone      string  `json:"phone" validate:"required,phone"`
	Address    Address `json:"address"`
	Image      Image   `json:"image"`
	IsBusiness *bool   `json:"isBusiness"`
}

// Columns returns the mutable user columns and their new values.
func (r *UserUpdateRequest) Columns() map[string]interface{} {
	addr := r.Address
	addr.ApplyDefaults()

	cols := map[string]interface{}{
		"name_first":  r.Name.First,
		"name_middle": r.Name.Middle,
		"name_last":   r.Name.Last,
		"email":       r.Email,
		"phone":       r.Phone,
	}
	for k, v := range addr.columns() {
		cols[k] = v
	}
	for k, v := range r.Image.columns() {
		cols[k] = v
	}
	if r.IsBusiness != nil {
		cols["is_business"] = *r.IsBusiness
	}
	return cols
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=6,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

// CardRequest is the body of POST and PUT /cards. bizNumber, likes and
// user_id are accepted for client convenience and ignored.
type CardRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=255"`
	Subtitle    string  `json:"subtitle" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"required,min=2,max=1024"`
	Address     Address `json:"address"`
	Web         string  `json:"web" validate:"omitempty,min=2,max=255,url"`
	Email       string  `json:"email" validate:"required,min=6,max=255,email"`
	Phone       string  `json:"phone" validate:"required,phone"`
	Image       *Image  `json:"image"`

	BizNumber json.RawMessage `json:"bizNumber"`
	Likes     json.RawMessage `json:"likes"`
	UserID    json.RawMessage `json:"user_id"`
}

func (r *CardRequest) normalized() (Address, string, Image) {
	addr := r.Address
	addr.ApplyDefaults()

	web := r.Web
	if web == "" {
		web = NotDefined
	}

	img := DefaultCardImage()
	if r.Image != nil {
		img = *r.Image
	}
	return addr, web, img
}

// ToCard builds a new card owned by userID. BizNumber is left for the
// create hook to assign.
func (r *CardRequest) ToCard(userID string) *Card {
	addr, web, img := r.normalized()
	return &Card{
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Address:     addr,
		Web:         web,
		Email:       r.Email,
		Phone:       r.Phone,
		Image:       img,
		UserID:      userID,
	}
}

// Columns returns the mutable card columns. Ownership, bizNumber and likes
// are not among them.
func (r *CardRequest) Columns() map[string]interface{} {
	addr, web, img := r.normalized()
	cols := map[string]interface{}{
		"title":       r.Title,
		"subtitle":    r.Subtitle,
		"description": r.Description,
		"web":         web,
		"email":       r.Email,
		"phone":       r.Phone,
	}
	for k, v := range addr.columns() {
		cols[k] = v
	}
	for k, v := range img.columns() {
		cols[k] = v
	}
	return cols
}
