package structs

type CreateHabitRequest struct {
	Name         string `json:"name"`
	StatCategory string `json:"statCategory"`
	Difficulty   int    `json:"difficulty"`
}

type CompleteHabitRequest struct {
	Note string `json:"note"`
}
