package domain

type Director struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
}

type DirectorPatch struct {
	Name      *string
	BirthYear *int
}

func (p DirectorPatch) IsEmpty() bool {
	return p.Name == nil && p.BirthYear == nil
}
