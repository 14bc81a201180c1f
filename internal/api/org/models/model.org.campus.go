package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campus là gốc của cây tổ chức cơ sở vật chất. Tòa nhà, tầng và phòng ban
// được nhúng trực tiếp trong document campus, không có collection riêng.
type Campus struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" index:"unique"`
	Buildings []Building         `json:"buildings" bson:"buildings"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// Building là một tòa nhà trong campus.
type Building struct {
	Name   string  `json:"name" bson:"name"`
	Floors []Floor `json:"floors" bson:"floors"`
}

// Floor là một tầng trong tòa nhà.
type Floor struct {
	Name    string   `json:"name" bson:"name"`
	Offices []Office `json:"offices" bson:"offices"`
}

// Office là một phòng ban trên tầng.
type Office struct {
	Name string `json:"name" bson:"name"`
}

// OfficeLocation mô tả vị trí đầy đủ của một phòng ban trong cây tổ chức.
type OfficeLocation struct {
	Campus   string `json:"campus"`
	Building string `json:"building"`
	Floor    string `json:"floor"`
	Office   string `json:"office"`
}
