package models

import "gorm.io/datatypes"

const (
	DefaultSpecialty = "General"
	DefaultBaseFee   = 100
)

// Doctor defines the structure for doctors and the inputs of their fee formula.
type Doctor struct {
	Person          `gorm:"embedded"`
	Specialty       string                      `json:"specialty" gorm:"index"`
	BaseFee         float64                     `json:"base_fee"`
	ExtraFeePercent float64                     `json:"extra_fee_percent"`
	Schedule        datatypes.JSONSlice[string] `json:"schedule"` // reserved, nothing reads it yet
}

// NewDoctor builds a doctor with the given fee settings and an empty schedule.
func NewDoctor(person Person, specialty string, baseFee, extraFeePercent float64) *Doctor {
	return &Doctor{
		Person:          person,
		Specialty:       specialty,
		BaseFee:         baseFee,
		ExtraFeePercent: extraFeePercent,
		Schedule:        datatypes.JSONSlice[string]{},
	}
}

// NewGeneralDoctor uses the default specialty, base fee and surcharge.
func NewGeneralDoctor(person Person) *Doctor {
	return NewDoctor(person, DefaultSpecialty, DefaultBaseFee, 0)
}

// CalculateFee prices a visit with the built-in specialty multipliers.
// Negative costs or surcharges are accepted and simply lower the fee.
func (d *Doctor) CalculateFee(treatmentCost float64) float64 {
	return defaultFeeTable.Calculate(d, treatmentCost)
}

// ToMap extends the person mapping with the fee settings and schedule.
func (d *Doctor) ToMap() map[string]any {
	data := d.Person.ToMap()
	data["specialty"] = d.Specialty
	data["base_fee"] = d.BaseFee
	data["extra_fee_percent"] = d.ExtraFeePercent
	data["schedule"] = []string(d.Schedule)
	return data
}
