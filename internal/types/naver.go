package types

// NaverSearchResult is one item of the Naver local search API.
type NaverSearchResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

// NaverSearchResponse is the envelope of the Naver local search API.
type NaverSearchResponse struct {
	LastBuildDate string              `json:"lastBuildDate"`
	Total         int                 `json:"total"`
	Start         int                 `json:"start"`
	Display       int                 `json:"display"`
	Items         []NaverSearchResult `json:"items"`
}
