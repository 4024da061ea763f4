package models

// Nurse defines the structure for nurses.
type Nurse struct {
	Person `gorm:"embedded"`
	Ward   *string `json:"ward"`
}

// NewNurse builds a nurse; a nil ward means unassigned.
func NewNurse(person Person, ward *string) *Nurse {
	return &Nurse{Person: person, Ward: ward}
}

// ToMap extends the person mapping with the ward.
func (n *Nurse) ToMap() map[string]any {
	data := n.Person.ToMap()
	data["ward"] = n.Ward
	return data
}
