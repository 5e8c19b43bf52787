package domain

// SubjectID is the authenticated subject placed in request context by the auth middleware.
// Its format is controlled by whatever issued the credential.
type SubjectID string

// RecipeID is the provider's numeric recipe identifier.
type RecipeID int64

// FavoriteID is an internal identifier for a saved favorite.
type FavoriteID string
