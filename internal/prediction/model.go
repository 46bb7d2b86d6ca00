package prediction

import "time"

type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// InputData is the farm survey a prediction was made from. Values are kept
// as the farmer typed them.
type InputData struct {
	Location            string       `json:"location,omitempty" validate:"max=255"`
	LocationCoordinates *Coordinates `json:"location_coordinates,omitempty"`
	SoilType            string       `json:"soil_type,omitempty"`
	NitrogenRequired    string       `json:"nitrogen_required,omitempty"`
	PhosphorousRequired string       `json:"phosphorous_required,omitempty"`
	PotassiumRequired   string       `json:"potassium_required,omitempty"`
	SoilPH              string       `json:"soil_ph,omitempty"`
	Temperature         string       `json:"temperature,omitempty"`
	Humidity            string       `json:"humidity,omitempty"`
	Rainfall            string       `json:"rainfall,omitempty"`
	FarmSize            string       `json:"farm_size,omitempty"`
	Climate             string       `json:"climate,omitempty"`
	PreviousCrop        string       `json:"previous_crop,omitempty"`
	Budget              string       `json:"budget,omitempty"`
	Experience          string       `json:"experience,omitempty"`
	Notes               string       `json:"notes,omitempty" validate:"max=2000"`
}

type RecommendedCrop struct {
	CropName       string   `json:"crop_name" validate:"required,max=128"`
	ScientificName string   `json:"scientific_name" validate:"required,max=128"`
	Suitability    *float64 `json:"suitability,omitempty" validate:"omitempty,gte=0,lte=100"`
	Risk           string   `json:"risk,omitempty" validate:"max=32"`
}

type Prediction struct {
	ID               uint              `json:"id"`
	UserID           uint              `json:"user_id"`
	InputData        InputData         `json:"input_data"`
	RecommendedCrops []RecommendedCrop `json:"recommended_crops"`
	PredictedAt      time.Time         `json:"predicted_at"`
}

// PredictionInput is the body of save and full-replace update.
type PredictionInput struct {
	InputData        InputData         `json:"input_data"`
	RecommendedCrops []RecommendedCrop `json:"recommended_crops" validate:"required,min=1,dive"`
}

// SelectedCrop is the crop a farmer chose to grow out of a prediction.
type SelectedCrop struct {
	ID             uint      `json:"id"`
	PredictionID   uint      `json:"prediction_id"`
	CropName       string    `json:"crop_name"`
	ScientificName string    `json:"scientific_name"`
	SelectedAt     time.Time `json:"selected_at"`
}

type SelectCropInput struct {
	PredictionID   uint   `json:"prediction_id" validate:"required"`
	CropName       string `json:"crop_name" validate:"required,max=128"`
	ScientificName string `json:"scientific_name" validate:"required,max=128"`
}

type UpdateSelectionInput struct {
	CropName       string `json:"crop_name" validate:"required,max=128"`
	ScientificName string `json:"scientific_name" validate:"required,max=128"`
}

// PredictRequest is the soil and weather reading the model scores. All
// readings are required; zero is a valid reading.
type PredictRequest struct {
	N           *float64 `json:"N" validate:"required,gte=0"`
	P           *float64 `json:"P" validate:"required,gte=0"`
	K           *float64 `json:"K" validate:"required,gte=0"`
	Temperature *float64 `json:"temperature" validate:"required,gte=-50,lte=60"`
	Humidity    *float64 `json:"humidity" validate:"required,gte=0,lte=100"`
	PH          *float64 `json:"ph" validate:"required,gte=0,lte=14"`
	Rainfall    *float64 `json:"rainfall" validate:"required,gte=0"`
}

type PredictResponse struct {
	RecommendedCrop string `json:"recommended_crop"`
}
