package models

import (
	"fmt"
	"strings"
)

type Species string

const (
	SpeciesEmber Species = "EMBER"
	SpeciesAqua  Species = "AQUA"
	SpeciesTerra Species = "TERRA"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesEmber, SpeciesAqua, SpeciesTerra:
		return true
	}
	return false
}

// ParseSpecies accepts any casing; empty input yields EMBER.
func ParseSpecies(input string) (Species, error) {
	s := Species(strings.ToUpper(strings.TrimSpace(input)))
	if s == "" {
		return SpeciesEmber, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("invalid species: %q", input)
	}
	return s, nil
}

const (
	MaxHP          = 100
	StarterStat    = 10
	DefaultPetName = "Nova"
)

// Stats holds the three pet attributes. Access goes through the
// StatCategory methods below instead of field names.
type Stats struct {
	Str int `bson:"str" json:"str"`
	Int int `bson:"int" json:"int"`
	Spi int `bson:"spi" json:"spi"`
}

func (s Stats) Get(c StatCategory) int {
	switch c {
	case StatSTR:
		return s.Str
	case StatINT:
		return s.Int
	case StatSPI:
		return s.Spi
	}
	return 0
}

func (s *Stats) Set(c StatCategory, v int) {
	switch c {
	case StatSTR:
		s.Str = v
	case StatINT:
		s.Int = v
	case StatSPI:
		s.Spi = v
	}
}

func (s *Stats) Add(c StatCategory, n int) {
	s.Set(c, s.Get(c)+n)
}

// Sub subtracts n from the stat, flooring at zero.
func (s *Stats) Sub(c StatCategory, n int) {
	s.Set(c, max(0, s.Get(c)-n))
}

type Pet struct {
	Nickname      string  `bson:"nickname" json:"nickname"`
	Species       Species `bson:"species" json:"species"`
	Stage         int     `bson:"stage" json:"stage"`
	Stats         Stats   `bson:"stats" json:"stats"`
	TotalXP       int     `bson:"totalXp" json:"totalXp"`
	HP            int     `bson:"hp" json:"hp"`
	EvolutionPath string  `bson:"evolutionPath" json:"evolutionPath"`
}
