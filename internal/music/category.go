package music

type Category string

const (
	CategoryCalm      Category = "calm"
	CategoryEnergetic Category = "energetic"
	CategoryHappy     Category = "happy"
	CategoryUplifting Category = "uplifting"
	CategoryChill     Category = "chill"
	CategoryFocus     Category = "focus"
)

// Categorize maps check-in scores to a playlist category. Anxiety wins over
// everything else, then mood, then energy.
func Categorize(mood int, energy int, anxiety int) Category {
	switch {
	case anxiety >= 7:
		return CategoryCalm
	case mood >= 8 && energy >= 7:
		return CategoryEnergetic
	case mood >= 7:
		return CategoryHappy
	case mood <= 3:
		return CategoryUplifting
	case energy <= 3:
		return CategoryChill
	default:
		return CategoryFocus
	}
}

// Query is the search string sent to streaming providers.
func (c Category) Query() string {
	switch c {
	case CategoryCalm:
		return "calm relaxing anxiety relief"
	case CategoryEnergetic:
		return "energetic workout upbeat"
	case CategoryHappy:
		return "happy feel good hits"
	case CategoryUplifting:
		return "uplifting hopeful mood booster"
	case CategoryChill:
		return "chill lofi relax"
	default:
		return "deep focus concentration"
	}
}

func (c Category) Message() string {
	switch c {
	case CategoryCalm:
		return "Soothing sounds to help you slow down and breathe"
	case CategoryEnergetic:
		return "High energy tracks to match your great mood"
	case CategoryHappy:
		return "Feel-good music to keep the good vibes going"
	case CategoryUplifting:
		return "Gentle, hopeful songs to lift your spirits"
	case CategoryChill:
		return "Laid-back music for a low-energy day"
	default:
		return "Steady, focused music to help you get things done"
	}
}
