package mocks

//go:generate mockgen -destination=mock_venue.go -package=mocks botcoin/internal/venue Venue
