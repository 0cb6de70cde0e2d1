// Package inference derives gallery metadata from naming conventions.
//
// Every function here is pure: it takes a title or path and returns the
// extracted value plus an ok flag, never an error. Title conventions follow
// the form "[category]tag, tag_tag_performer, performer", with dates written
// as YYYY.MM.DD and series codes as Vol.<n> or No.<n>.
package inference
