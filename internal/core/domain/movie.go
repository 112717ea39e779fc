package domain

// Movie is a catalogue entry. DirectorID is nil when no director is linked
// or the linked director was deleted.
type Movie struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	DirectorID *int64 `json:"director_id"`
}

// MoviePatch lists the fields of a partial update; nil fields are left unchanged.
type MoviePatch struct {
	Title      *string
	Year       *int
	DirectorID *int64
}

// IsEmpty reports whether the patch would change nothing.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Year == nil && p.DirectorID == nil
}
