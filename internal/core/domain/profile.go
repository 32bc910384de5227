package domain

// ProfilePatch carries the editable profile fields. Zero-valued fields are
// still sent; the management API treats the patch as a full replacement of
// the editable subset.
type ProfilePatch struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
