package models

import "gorm.io/datatypes"

// MedicalRecord is an opaque entry in a patient's history. Callers usually fill
// date, doctor, diagnosis, procedures and doctor_fee, but the shape is not checked.
type MedicalRecord = datatypes.JSONMap

// Patient defines the structure for patient records.
type Patient struct {
	Person         `gorm:"embedded"`
	Insurance      *string                            `json:"insurance"` // nil when uninsured
	MedicalRecords datatypes.JSONSlice[MedicalRecord] `json:"medical_records"`
}

// NewPatient builds a patient with an empty, append-only record history.
func NewPatient(person Person, insurance *string) *Patient {
	return &Patient{
		Person:         person,
		Insurance:      insurance,
		MedicalRecords: datatypes.JSONSlice[MedicalRecord]{},
	}
}

// AddRecord appends record to the history. Insertion order is the chronological order.
func (p *Patient) AddRecord(record MedicalRecord) {
	p.MedicalRecords = append(p.MedicalRecords, record)
}

// ToMap extends the person mapping with insurance and the record history.
func (p *Patient) ToMap() map[string]any {
	data := p.Person.ToMap()
	data["insurance"] = p.Insurance
	data["medical_records"] = []MedicalRecord(p.MedicalRecords)
	return data
}

// CloneRecord copies a record together with its nested maps and slices.
// Scalar values keep their dynamic type.
func CloneRecord(record MedicalRecord) MedicalRecord {
	if record == nil {
		return nil
	}
	out := make(MedicalRecord, len(record))
	for k, v := range record {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case datatypes.JSONMap:
		return CloneRecord(val)
	case map[string]any:
		if val == nil {
			return val
		}
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		if val == nil {
			return val
		}
		return append([]string{}, val...)
	case []map[string]any:
		if val == nil {
			return val
		}
		out := make([]map[string]any, len(val))
		for i, inner := range val {
			out[i], _ = cloneValue(inner).(map[string]any)
		}
		return out
	default:
		return v
	}
}

// CloneRecords copies a whole history with CloneRecord.
func CloneRecords(records []MedicalRecord) []MedicalRecord {
	if records == nil {
		return nil
	}
	out := make([]MedicalRecord, len(records))
	for i, rec := range records {
		out[i] = CloneRecord(rec)
	}
	return out
}
