package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// decodeMap fills the scalar fields of an entity from a mapping produced by ToMap.
func decodeMap(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode mapping: %w", err)
	}
	return nil
}

// recordsFromValue takes the record history as stored in a mapping without a
// JSON hop, so numbers inside records keep their Go type.
func recordsFromValue(v any) ([]MedicalRecord, error) {
	switch records := v.(type) {
	case nil:
		return []MedicalRecord{}, nil
	case []MedicalRecord:
		return CloneRecords(records), nil
	case []map[string]any:
		out := make([]MedicalRecord, len(records))
		for i, rec := range records {
			out[i] = CloneRecord(MedicalRecord(rec))
		}
		return out, nil
	case []any:
		out := make([]MedicalRecord, len(records))
		for i, item := range records {
			switch rec := item.(type) {
			case MedicalRecord:
				out[i] = CloneRecord(rec)
			case map[string]any:
				out[i] = CloneRecord(MedicalRecord(rec))
			default:
				return nil, fmt.Errorf("medical_records[%d]: unexpected %T", i, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("medical_records: unexpected %T", v)
	}
}

// PatientFromMap rebuilds a patient from Patient.ToMap output.
func PatientFromMap(data map[string]any) (*Patient, error) {
	records, err := recordsFromValue(data["medical_records"])
	if err != nil {
		return nil, err
	}

	scalars := maps.Clone(data)
	delete(scalars, "medical_records")

	p := NewPatient(Person{}, nil)
	if err := decodeMap(scalars, p); err != nil {
		return nil, err
	}
	p.MedicalRecords = records
	return p, nil
}

// DoctorFromMap rebuilds a doctor from Doctor.ToMap output.
func DoctorFromMap(data map[string]any) (*Doctor, error) {
	d := NewGeneralDoctor(Person{})
	if err := decodeMap(data, d); err != nil {
		return nil, err
	}
	return d, nil
}

// NurseFromMap rebuilds a nurse from Nurse.ToMap output.
func NurseFromMap(data map[string]any) (*Nurse, error) {
	n := &Nurse{}
	if err := decodeMap(data, n); err != nil {
		return nil, err
	}
	return n, nil
}

// AppointmentFromMap rebuilds an appointment from Appointment.ToMap output.
func AppointmentFromMap(data map[string]any) (*Appointment, error) {
	a := NewAppointment("", "", "", "", "")
	if err := decodeMap(data, a); err != nil {
		return nil, err
	}
	return a, nil
}
