// internal/models/suggestion.go
package models

// Suggestion is one dish proposal as parsed from the generative model's JSON
// contract. Field names track the prompt's FORMAT block.
type Suggestion struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Recipe      Recipe       `json:"recipe"`
	Ingredients []Ingredient `json:"ingredients"`
	Nutrition   Nutrition    `json:"nutrition"`
	SearchTerms SearchTerms  `json:"searchTerms"`
}

type Recipe struct {
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Servings     int      `json:"servings"`
	Instructions []string `json:"instructions"`
}

type Ingredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
}

// SearchTerms are the model-authored queries used for media enrichment.
type SearchTerms struct {
	YouTube string `json:"youtube"`
	Image   string `json:"image"`
}

// VideoSelection is the result of video selection for one suggestion:
// exactly one of a direct video or a generic search link.
type VideoSelection struct {
	Type         string  `json:"type"` // SelectionDirectVideo or SelectionSearchLink
	VideoID      string  `json:"videoId,omitempty"`
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	ChannelTitle string  `json:"channelTitle,omitempty"`
	PublishedAt  string  `json:"publishedAt,omitempty"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
	Description  string  `json:"description,omitempty"`
	Language     string  `json:"language,omitempty"`
	ViewCount    int64   `json:"viewCount,omitempty"`
	LikeCount    int64   `json:"likeCount,omitempty"`
	Score        float64 `json:"score,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}

const (
	SelectionDirectVideo = "direct_video"
	SelectionSearchLink  = "search_link"
)

// Media bundles everything enrichment attaches to a suggestion.
type Media struct {
	Video         VideoSelection `json:"youtubeVideo"`
	ImageURL      string         `json:"imageUrl"`
	FallbackImage string         `json:"fallbackImage"`
}

// EnrichedSuggestion is a Suggestion with media links and a meal-type tag.
type EnrichedSuggestion struct {
	Suggestion
	Media    Media  `json:"media"`
	MealType string `json:"mealType"`
}

// MealPlan is one meal type's batch of enriched suggestions.
type MealPlan struct {
	Suggestions []EnrichedSuggestion `json:"suggestions"`
	TotalCount  int                  `json:"totalCount"`
	GeneratedAt string               `json:"generatedAt"`
	Error       string               `json:"error,omitempty"`
}
