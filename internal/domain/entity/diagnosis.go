package entity

import "time"

// HealthyLabel: метка здорового растения, под ней в таблице лежит совет по уходу.
const HealthyLabel = "Healthy"

// Identification: то, что вернул классификатор по фото.
type Identification struct {
	Provider    string  `json:"provider"`
	PlantName   string  `json:"plant_name,omitempty"`
	DiseaseName string  `json:"disease_name,omitempty"`
	Confidence  float64 `json:"confidence"` // в диапазоне [0,1]
	Healthy     bool    `json:"healthy"`
}

// Label возвращает метку для поиска средства: болезнь, "Healthy" или растение.
func (i *Identification) Label() string {
	switch {
	case i.DiseaseName != "":
		return i.DiseaseName
	case i.Healthy:
		return HealthyLabel
	default:
		return i.PlantName
	}
}

// Summary: короткая справка из энциклопедии.
type Summary struct {
	Title   string
	Extract string
	URL     string
}

// Description: итог поиска описания. Text никогда не пуст.
type Description struct {
	Name  string `json:"name"`
	Term  string `json:"term,omitempty"` // запрос, который дал результат
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
	Found bool   `json:"found"`
}

// NoDescriptionFor возвращает заглушку для имени.
func NoDescriptionFor(name string) Description {
	return Description{Name: name, Text: NoDescription}
}

// Resolution: средство и описание для одной метки.
type Resolution struct {
	Label       string           `json:"label"`
	Remedy      RemedyResolution `json:"remedy"`
	Description Description      `json:"description"`
}

// Diagnosis: полный ответ на одно фото.
type Diagnosis struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Identification Identification   `json:"identification"`
	Remedy         RemedyResolution `json:"remedy"`
	Disease        Description      `json:"disease"`
	Plant          Description      `json:"plant"`
}
