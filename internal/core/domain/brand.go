package domain

import "errors"

var ErrBrandNotFound = errors.New("brand not found")
var ErrBrandExists = errors.New("brand already exists")

// Brand groups cars by manufacturer and owns the category options offered on
// the car form.
type Brand struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories,omitempty"`
}
