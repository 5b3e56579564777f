package tmdb

// MovieResult is a movie entry in list responses (trending, search)
type MovieResult struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview,omitempty"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate *string  `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   int      `json:"vote_count,omitempty"`
	GenreIDs    []int    `json:"genre_ids"`
	Popularity  float64  `json:"popularity,omitempty"`
}

// PagedResponse is the envelope of paginated list endpoints
type PagedResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// Genre is a genre entry
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the response of /genre/movie/list
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// CastMember is a cast entry of the credits block
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// Credits is the credits block appended to movie details
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// Video is an entry of the videos block appended to movie details
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`     // "YouTube", "Vimeo"
	Type     string `json:"type"`     // "Trailer", "Teaser", "Clip"
	Official bool   `json:"official"`
}

// Videos wraps the videos block
type Videos struct {
	Results []Video `json:"results"`
}

// MovieDetails is the response of /movie/{id} with videos and credits appended
type MovieDetails struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate *string  `json:"release_date"`
	Runtime     *int     `json:"runtime"`
	VoteAverage *float64 `json:"vote_average"`
	Genres      []Genre  `json:"genres"`
	Credits     *Credits `json:"credits,omitempty"`
	Videos      *Videos  `json:"videos,omitempty"`
}

// ErrorResponse is the body TMDB returns for failed requests
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
