// Package domain contains the core entities of the spaced-repetition
// service: flashcards with their scheduling state, and the append-only
// review history log. Entities validate themselves; scheduling behavior
// lives in the domain/srs subpackage.
package domain
