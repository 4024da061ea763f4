package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hospital-records/internal/utils"

	"gopkg.in/yaml.v3"
)

// FeeTable maps a specialty to the factor applied to treatment cost.
// Specialties missing from the table use a factor of 1.0.
type FeeTable map[string]float64

var defaultFeeTable = DefaultFeeTable()

// DefaultFeeTable returns a fresh copy of the built-in multipliers.
func DefaultFeeTable() FeeTable {
	return FeeTable{
		"Cardiology":  1.5,
		"Neurology":   1.6,
		"Pediatrics":  1.1,
		"Orthopedics": 1.3,
		"General":     1.0,
	}
}

func (t FeeTable) Multiplier(specialty string) float64 {
	if mult, ok := t[specialty]; ok {
		return mult
	}
	return 1.0
}

// Calculate applies base_fee + cost*multiplier, then the doctor's surcharge on
// that whole amount, and rounds to cents (half away from zero).
func (t FeeTable) Calculate(d *Doctor, treatmentCost float64) float64 {
	fee := d.BaseFee + treatmentCost*t.Multiplier(d.Specialty)
	fee += fee * (d.ExtraFeePercent / 100)
	return utils.RoundFloat(fee, 2)
}

type feeTableFile struct {
	Multipliers map[string]float64 `yaml:"multipliers"`
}

// LoadFeeTable reads a YAML document of the form
//
//	multipliers:
//	  Cardiology: 1.5
//
// An empty path returns the built-in table.
func LoadFeeTable(path string) (FeeTable, error) {
	if path == "" {
		return DefaultFeeTable(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read fee table: %w", err)
	}

	var file feeTableFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse fee table: %w", err)
	}
	if len(file.Multipliers) == 0 {
		return nil, errors.New("fee table has no multipliers")
	}
	return FeeTable(file.Multipliers), nil
}
