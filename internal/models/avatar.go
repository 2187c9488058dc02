package models

import (
	"strings"
	"time"
)

// Avatar defaults applied at registration
const (
	DefaultColor     = "blue"
	DefaultAccessory = "none"
	StartingLevel    = 1
)

// Colors is the palette an avatar may be drawn in
var Colors = []string{"red", "green", "blue", "yellow", "purple", "cyan", "white"}

// Avatar represents a child's companion that levels up with recorded scores
type Avatar struct {
	ID              int64
	UserID          int64
	Name            string
	Color           string
	Accessory       string
	Level           int
	TotalExperience int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewDefaultAvatar returns an unsaved level 1 avatar for the user
func NewDefaultAvatar(userID int64, name string) *Avatar {
	return &Avatar{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Color:     DefaultColor,
		Accessory: DefaultAccessory,
		Level:     StartingLevel,
	}
}

// NormalizeAccessory lowercases an accessory and maps blank input to "none"
func NormalizeAccessory(accessory string) string {
	accessory = strings.ToLower(strings.TrimSpace(accessory))
	if accessory == "" {
		return DefaultAccessory
	}
	return accessory
}

// IsValidColor reports whether color is in the palette
func IsValidColor(color string) bool {
	color = strings.ToLower(strings.TrimSpace(color))
	for _, c := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

// ArtFile returns the name of the ASCII art asset for the avatar's current
// shape, stage and accessory
func (a *Avatar) ArtFile() string {
	var base string
	switch strings.ToLower(strings.TrimSpace(a.Name)) {
	case "mage":
		base = "avatar2"
	case "archer":
		base = "avatar3"
	default:
		base = "avatar1"
	}

	var stage string
	switch {
	case a.Level >= 10:
		stage = "_evolved2"
	case a.Level >= 5:
		stage = "_evolved1"
	default:
		stage = "_default"
	}

	file := base + stage
	if accessory := NormalizeAccessory(a.Accessory); accessory != DefaultAccessory {
		file += "_" + accessory
	}
	return file + ".txt"
}
