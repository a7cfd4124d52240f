// Package models holds the GORM table models. Each model converts to and from
// its domain entity; decimals are stored as strings and string lists as JSON.
package models
