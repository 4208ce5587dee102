package model

// NotDefined fills optional address parts the client left out.
const NotDefined = "not defined"

// Name is a person's name as stored on a user.
type Name struct {
	First  string `json:"first" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	Middle string `json:"middle" gorm:"type:varchar(255)" validate:"max=255"`
	Last   string `json:"last" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
}

// Address is shared by users and cards.
type Address struct {
	State       string `json:"state" gorm:"type:varchar(255)" validate:"omitempty,min=2,max=255"`
	Country     string `json:"country" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	City        string `json:"city" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	Street      string `json:"street" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	HouseNumber string `json:"houseNumber" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Zip         string `json:"zip" gorm:"type:varchar(255)" validate:"omitempty,min=2,max=255"`
}

// ApplyDefaults sets the optional parts to NotDefined when empty.
func (a *Address) ApplyDefaults() {
	if a.State == "" {
		a.State = NotDefined
	}
	if a.Zip == "" {
		a.Zip = NotDefined
	}
}

// Image is an optional picture reference.
type Image struct {
	URL string `json:"url" gorm:"type:varchar(1024)" validate:"omitempty,max=1024,url"`
	Alt string `json:"alt" gorm:"type:varchar(255)" validate:"max=255"`
}

func (a Address) columns() map[string]interface{} {
	return map[string]interface{}{
		"address_state":        a.State,
		"address_country":      a.Country,
		"address_city":         a.City,
		"address_street":       a.Street,
		"address_house_number": a.HouseNumber,
		"address_zip":          a.Zip,
	}
}

func (i Image) columns() map[string]interface{} {
	return map[string]interface{}{
		"image_url": i.URL,
		"image_alt": i.Alt,
	}
}
