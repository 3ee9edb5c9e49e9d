package domain

// Table is a mongo collection name.
type Table string

const (
	TableUsers      Table = "users"
	TableListings   Table = "listings"
	TableLandTokens Table = "land_tokens"
	TableBids       Table = "bids"
)
