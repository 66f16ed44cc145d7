package testutils

import (
	"context"
	"fmt"
	"sync"

	"chardash/internal/api"
	"chardash/internal/errors"
	"chardash/pkg/types"
)

// Characters returns a small, realistic roster.
func Characters() []types.Character {
	return types.NormalizeAll([]types.Character{
		{ID: 1, Name: "Mickey Mouse", Films: []string{"Fantasia", "Fun and Fancy Free"}, TVShows: []string{"House of Mouse", "Mickey Mouse Clubhouse"}, Allies: []string{"Minnie Mouse", "Goofy", "Donald Duck", "Pluto"}, Enemies: []string{"Pete"}},
		{ID: 2, Name: "Donald Duck", Films: []string{"Saludos Amigos"}, TVShows: []string{"DuckTales", "House of Mouse"}, VideoGames: []string{"QuackShot"}},
		{ID: 3, Name: "Goofy", Films: []string{"A Goofy Movie"}, TVShows: []string{"Goof Troop"}},
		{ID: 4, Name: "Pete", TVShows: []string{"Goof Troop"}},
		{ID: 5, Name: "Scrooge McDuck", TVShows: []string{"DuckTales"}, Films: []string{"DuckTales the Movie"}},
	})
}

// Generate returns n characters named "Character 001" onward.
func Generate(n int) []types.Character {
	chars := make([]types.Character, n)
	for i := range chars {
		chars[i] = types.Normalize(types.Character{ID: i + 1, Name: fmt.Sprintf("Character %03d", i+1)})
	}
	return chars
}

// StaticFetcher pages through a fixed slice the way the API would.
type StaticFetcher struct {
	Characters []types.Character
	// FailPage makes that page return a 500.
	FailPage int

	mu    sync.Mutex
	calls int
}

func (f *StaticFetcher) FetchPage(ctx context.Context, page, pageSize int) (*api.Page, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == f.FailPage {
		return nil, errors.NewRemoteFetchError(fmt.Sprintf("static/character?page=%d", page), 500, nil)
	}

	start := min((page-1)*pageSize, len(f.Characters))
	end := min(start+pageSize, len(f.Characters))
	p := &api.Page{
		Characters: append([]types.Character{}, f.Characters[start:end]...),
		TotalCount: end - start,
		TotalPages: (len(f.Characters) + pageSize - 1) / pageSize,
	}
	if end < len(f.Characters) {
		p.NextPage = fmt.Sprintf("page=%d", page+1)
	}
	return p, nil
}

// Calls is the number of FetchPage calls so far.
func (f *StaticFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
