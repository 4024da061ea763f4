package models

// Person holds the identity and contact fields shared by patients, doctors and nurses.
// ID is set once at construction and never changed afterwards.
type Person struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"index"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// NewPerson copies the given fields verbatim; nothing is validated.
func NewPerson(id, name string, age int, gender, contact string) Person {
	return Person{
		ID:      id,
		Name:    name,
		Age:     age,
		Gender:  gender,
		Contact: contact,
	}
}

// ToMap returns the base mapping every person variant extends.
func (p Person) ToMap() map[string]any {
	return map[string]any{
		"id":      p.ID,
		"name":    p.Name,
		"age":     p.Age,
		"gender":  p.Gender,
		"contact": p.Contact,
	}
}
