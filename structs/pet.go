package structs

type StatsPatch struct {
	Str *int `json:"str"`
	Int *int `json:"int"`
	Spi *int `json:"spi"`
}

// UpdatePetRequest carries only the fields to change.
type UpdatePetRequest struct {
	Stats   *StatsPatch `json:"stats"`
	TotalXP *int        `json:"totalXp"`
}
