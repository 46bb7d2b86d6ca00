package crop

import "time"

// Crop is one entry of the growing guide catalogue. Agronomic fields are free
// text ("Moderate", "20-30°C") the way agronomists write them.
type Crop struct {
	ID                 uint      `json:"id"`
	CropName           string    `json:"crop_name"`
	ScientificName     string    `json:"scientific_name,omitempty"`
	Category           string    `json:"category,omitempty"`
	Season             string    `json:"season,omitempty"`
	GrowthPeriod       string    `json:"growth_period,omitempty"`
	NitrogenRequired   string    `json:"nitrogen_required,omitempty"`
	PhosphorusRequired string    `json:"phosphorus_required,omitempty"`
	PotassiumRequired  string    `json:"potassium_required,omitempty"`
	Weather            string    `json:"weather,omitempty"`
	Temperature        string    `json:"temperature,omitempty"`
	Rainfall           string    `json:"rainfall,omitempty"`
	Humidity           string    `json:"humidity,omitempty"`
	SoilPH             string    `json:"soil_ph,omitempty"`
	MarketValue        *float64  `json:"market_value,omitempty"`
	SoilType           string    `json:"soil_type,omitempty"`
	Climate            string    `json:"climate,omitempty"`
	Fertilizer         string    `json:"fertilizer,omitempty"`
	PestControl        string    `json:"pest_control,omitempty"`
	Harvesting         string    `json:"harvesting,omitempty"`
	Storage            string    `json:"storage,omitempty"`
	Spacing            string    `json:"spacing,omitempty"`
	Sunlight           string    `json:"sunlight,omitempty"`
	Description        string    `json:"description,omitempty"`
	Tips               string    `json:"tips,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CropInput is the body of create and full-replace update.
type CropInput struct {
	CropName           string   `json:"crop_name" validate:"required,max=128"`
	ScientificName     string   `json:"scientific_name" validate:"max=128"`
	Category           string   `json:"category" validate:"max=64"`
	Season             string   `json:"season" validate:"max=64"`
	GrowthPeriod       string   `json:"growth_period" validate:"max=64"`
	NitrogenRequired   string   `json:"nitrogen_required" validate:"max=64"`
	PhosphorusRequired string   `json:"phosphorus_required" validate:"max=64"`
	PotassiumRequired  string   `json:"potassium_required" validate:"max=64"`
	Weather            string   `json:"weather" validate:"max=255"`
	Temperature        string   `json:"temperature" validate:"max=64"`
	Rainfall           string   `json:"rainfall" validate:"max=64"`
	Humidity           string   `json:"humidity" validate:"max=64"`
	SoilPH             string   `json:"soil_ph" validate:"max=64"`
	MarketValue        *float64 `json:"market_value" validate:"omitempty,gte=0"`
	SoilType           string   `json:"soil_type" validate:"max=128"`
	Climate            string   `json:"climate" validate:"max=128"`
	Fertilizer         string   `json:"fertilizer"`
	PestControl        string   `json:"pest_control"`
	Harvesting         string   `json:"harvesting"`
	Storage            string   `json:"storage"`
	Spacing            string   `json:"spacing" validate:"max=128"`
	Sunlight           string   `json:"sunlight" validate:"max=128"`
	Description        string   `json:"description"`
	Tips               string   `json:"tips"`
}

// values lists the input in column order of cropWriteColumns.
func (in CropInput) values() []any {
	return []any{
		in.CropName, in.ScientificName, in.Category, in.Season, in.GrowthPeriod,
		in.NitrogenRequired, in.PhosphorusRequired, in.PotassiumRequired,
		in.Weather, in.Temperature, in.Rainfall, in.Humidity, in.SoilPH, in.MarketValue,
		in.SoilType, in.Climate, in.Fertilizer, in.PestControl, in.Harvesting, in.Storage,
		in.Spacing, in.Sunlight, in.Description, in.Tips,
	}
}
