package entity

// Charity organización benéfica registrada en la plataforma.
type Charity struct {
	ID          string
	Name        string
	Description string
	Verified    bool
}
