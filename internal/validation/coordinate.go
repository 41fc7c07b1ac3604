package validation

// ValidateCoordinate checks that a (lat, lng) pair is a valid geographic
// coordinate in floating point degrees.
func ValidateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return errorf("latitude must be between -90 and 90, got %g", lat)
	}
	if lng < -180 || lng > 180 {
		return errorf("longitude must be between -180 and 180, got %g", lng)
	}
	return nil
}

// ValidateRating checks an optional visit rating. A nil rating is a
// comment-only visit and is always valid.
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return errorf("rating must be between 1 and 5, got %d", *rating)
	}
	return nil
}
