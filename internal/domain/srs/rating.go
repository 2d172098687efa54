package srs

// Rating is the internal 4-point scale used by the interval and ease factor
// calculations. Callers always submit the 0-5 UI scale; it is mapped down
// before any scheduling math happens.
type Rating int

// Internal rating values
const (
	RatingAgain Rating = 1
	RatingHard  Rating = 2
	RatingGood  Rating = 3
	RatingEasy  Rating = 4
)

// uiRatingScale maps the 0-5 scale exposed to users onto the internal scale.
var uiRatingScale = map[int]Rating{
	0: RatingAgain,
	1: RatingAgain,
	2: RatingHard,
	3: RatingGood,
	4: RatingEasy,
	5: RatingEasy,
}

// MapRating translates a 0-5 UI rating to the internal 4-point scale.
// Out-of-range input is treated as a failed review and maps to RatingAgain;
// the function never errors. Callers that want strict validation must check
// the range before submitting.
func MapRating(uiRating int) Rating {
	if r, ok := uiRatingScale[uiRating]; ok {
		return r
	}
	return RatingAgain
}

// IsSuccessRating reports whether a 0-5 UI rating counts as a successful
// repetition (Good or better).
func IsSuccessRating(uiRating int) bool {
	return uiRating >= 3
}

// String returns a human-readable name for the rating.
func (r Rating) String() string {
	switch r {
	case RatingAgain:
		return "again"
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	default:
		return "unknown"
	}
}
