package land

import "time"

type Unit string

const (
	UnitKattha  Unit = "kattha"
	UnitRopani  Unit = "ropani"
	UnitHectare Unit = "hectare"
)

// Land is a parcel a farmer registered along with its soil and climate readings.
type Land struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	AreaSize    float64   `json:"area_size"`
	Unit        Unit      `json:"unit"`
	SoilType    *string   `json:"soil_type,omitempty"`
	PH          *float64  `json:"ph,omitempty"`
	NLevel      *float64  `json:"n_level,omitempty"`
	PLevel      *float64  `json:"p_level,omitempty"`
	KLevel      *float64  `json:"k_level,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Rainfall    *float64  `json:"rainfall,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"`
	Irrigated   bool      `json:"irrigated"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateLandInput struct {
	AreaSize    float64  `json:"area_size" validate:"gt=0"`
	Unit        Unit     `json:"unit" validate:"required,oneof=kattha ropani hectare"`
	SoilType    *string  `json:"soil_type" validate:"omitempty,max=64"`
	PH          *float64 `json:"ph" validate:"omitempty,gte=0,lte=14"`
	NLevel      *float64 `json:"n_level" validate:"omitempty,gte=0"`
	PLevel      *float64 `json:"p_level" validate:"omitempty,gte=0"`
	KLevel      *float64 `json:"k_level" validate:"omitempty,gte=0"`
	Temperature *float64 `json:"temperature"`
	Rainfall    *float64 `json:"rainfall" validate:"omitempty,gte=0"`
	Humidity    *float64 `json:"humidity" validate:"omitempty,gte=0,lte=100"`
	Irrigated   bool     `json:"irrigated"`
}
