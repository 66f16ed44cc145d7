package api

import (
	"chardash/pkg/types"

	"github.com/tidwall/gjson"
)

// decodePage reads any of the accepted list shapes: a wrapper with a data
// array (pagination at the top level or under info), or a bare array.
// Anything else decodes to an empty page.
func decodePage(body []byte) *Page {
	root := gjson.ParseBytes(body)
	page := &Page{Characters: []types.Character{}}

	records := root
	if !root.IsArray() {
		records = root.Get("data")
	}
	if records.IsArray() {
		for _, r := range records.Array() {
			if !r.IsObject() {
				continue
			}
			page.Characters = append(page.Characters, decodeCharacter(r))
		}
	}

	if root.IsObject() {
		page.TotalCount = int(firstOf(root, "count", "info.count").Int())
		page.TotalPages = int(firstOf(root, "totalPages", "info.totalPages").Int())
		page.NextPage = firstOf(root, "nextPage", "info.nextPage").String()
		page.PreviousPage = firstOf(root, "previousPage", "info.previousPage").String()
	}
	return page
}

// decodeSingle reads {data: Record} or a bare Record.
func decodeSingle(body []byte) (types.Character, bool) {
	root := gjson.ParseBytes(body)
	if data := root.Get("data"); data.IsObject() {
		return decodeCharacter(data), true
	}
	if root.IsObject() {
		return decodeCharacter(root), true
	}
	return types.Character{}, false
}

func decodeCharacter(r gjson.Result) types.Character {
	return types.Normalize(types.Character{
		ID:         int(firstOf(r, "_id", "id").Int()),
		Name:       stringField(r.Get("name")),
		ImageURL:   stringField(r.Get("imageUrl")),
		URL:        stringField(r.Get("url")),
		TVShows:    stringList(r.Get("tvShows")),
		VideoGames: stringList(r.Get("videoGames")),
		Allies:     stringList(r.Get("allies")),
		Enemies:    stringList(r.Get("enemies")),
		Films:      stringList(r.Get("films")),
	})
}

// firstOf returns the first path holding a non-null value. A null or
// missing value yields the zero Result.
func firstOf(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func stringField(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.String()
}

// stringList keeps the string entries of an array. Non-arrays become empty.
func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
	}
	return out
}
