package planet

// Planet keeps population as free text; values such as "unknown" are valid.
type Planet struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Population *string `json:"population"`
	Climate    *string `json:"climate"`
	Terrain    *string `json:"terrain"`
}

type CreateRequest struct {
	Name       *string `json:"name" yaml:"name"`
	Population *string `json:"population" yaml:"population"`
	Climate    *string `json:"climate" yaml:"climate"`
	Terrain    *string `json:"terrain" yaml:"terrain"`
}
