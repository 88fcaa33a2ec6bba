// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

// Error codes returned in APIError.Code.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidationFailed   = "VALIDATION_ERROR"
	ErrCodeInvalidMovieID     = "INVALID_MOVIE_ID"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeNoRecommendations  = "NO_RECOMMENDATIONS"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// msgNoRecommendations is shown for every empty recommendation result.
const msgNoRecommendations = "Could not generate recommendations for this movie. Please try again or pick another title."
