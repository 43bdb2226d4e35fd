package omdb

// OMDb response types. Every field arrives as a string; "N/A" marks missing values.

// responseFlag is embedded in every payload
type responseFlag struct {
	Response string `json:"Response"` // "True" or "False"
	Error    string `json:"Error,omitempty"`
}

func (r responseFlag) ok() bool {
	return r.Response == "True"
}

// SearchResponse is the body of an ?s= request
type SearchResponse struct {
	responseFlag
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

// SearchItem is one entry of SearchResponse.Search
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// TitleResponse is the body of an ?i= request
type TitleResponse struct {
	responseFlag
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
}
