package types

// Character is one record from the character API after normalization.
// An empty Name means the upstream record had no name.
type Character struct {
	ID         int      `json:"_id" yaml:"id"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`
	TVShows    []string `json:"tvShows" yaml:"tv_shows"`
	VideoGames []string `json:"videoGames" yaml:"video_games"`
	Allies     []string `json:"allies" yaml:"allies"`
	Enemies    []string `json:"enemies" yaml:"enemies"`
	Films      []string `json:"films" yaml:"films"`
}

// UnknownName is shown wherever a character has no name.
const UnknownName = "Unknown"

// DisplayName returns the character's name or UnknownName.
func (c Character) DisplayName() string {
	if c.Name == "" {
		return UnknownName
	}
	return c.Name
}

// Normalize returns c with every collection field present (possibly empty)
// and ImageURL falling back to URL. Normalize(Normalize(c)) == Normalize(c).
func Normalize(c Character) Character {
	c.TVShows = orEmpty(c.TVShows)
	c.VideoGames = orEmpty(c.VideoGames)
	c.Allies = orEmpty(c.Allies)
	c.Enemies = orEmpty(c.Enemies)
	c.Films = orEmpty(c.Films)
	if c.ImageURL == "" {
		c.ImageURL = c.URL
	}
	return c
}

// NormalizeAll normalizes every record into a new slice.
func NormalizeAll(chars []Character) []Character {
	out := make([]Character, len(chars))
	for i, c := range chars {
		out[i] = Normalize(c)
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
