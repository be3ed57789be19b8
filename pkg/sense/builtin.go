package sense

import "github.com/johncui/senses/pkg/model"

// Vision vocabularies. Intensity is match density, not category.
var (
	Colors  = Vocabulary{"red", "green", "blue", "yellow", "purple", "orange", "black", "white"}
	Shapes  = Vocabulary{"circle", "square", "triangle", "rectangle", "oval"}
	Objects = Vocabulary{"person", "car", "tree", "building", "animal", "book", "phone"}
)

var (
	SoundLevels = Table{
		Rules: []Rule{
			{"loud", []string{"thunder", "explosion", "siren", "shout"}},
			{"moderate", []string{"conversation", "music", "traffic", "footsteps"}},
			{"quiet", []string{"whisper", "rustling", "breathing", "clock tick"}},
		},
		Fallback: "moderate",
	}
	Frequencies = Table{
		Rules: []Rule{
			{"low", []string{"bass", "rumble", "thunder"}},
			{"medium", []string{"human voice", "music", "traffic"}},
			{"high", []string{"whistle", "bird chirp", "alarm"}},
		},
		Fallback: "medium",
	}

	Textures = Table{
		Rules: []Rule{
			{"smooth", []string{"glass", "metal", "plastic"}},
			{"rough", []string{"sandpaper", "bark", "stone"}},
			{"soft", []string{"fabric", "fur", "cotton"}},
			{"hard", []string{"wood", "concrete", "ice"}},
		},
		Fallback: "neutral",
	}
	Temperatures = Table{
		Rules: []Rule{
			{"hot", []string{"fire", "steam", "sun"}},
			{"warm", []string{"body heat", "warm water"}},
			{"cool", []string{"breeze", "shade"}},
			{"cold", []string{"ice", "snow", "cold metal"}},
		},
		Fallback: "neutral",
	}

	Scents = Table{
		Rules: []Rule{
			{"pleasant", []string{"flowers", "baking", "fresh air", "coffee"}},
			{"unpleasant", []string{"rotten", "smoke", "chemicals", "garbage"}},
			{"neutral", []string{"paper", "wood", "metal", "water"}},
			{"strong", []string{"perfume", "garlic", "ammonia", "gasoline"}},
		},
		Fallback: "neutral",
	}

	Tastes = Table{
		Rules: []Rule{
			{"sweet", []string{"sugar", "honey", "fruit", "chocolate"}},
			{"sour", []string{"lemon", "vinegar", "citrus", "yogurt"}},
			{"salty", []string{"salt", "chips", "pretzels", "olives"}},
			{"bitter", []string{"coffee", "dark chocolate", "grapefruit", "beer"}},
			{"umami", []string{"meat", "cheese", "mushrooms", "soy sauce"}},
		},
		Fallback: "neutral",
	}
)

// Profiles returns the built-in configuration for each sense, in model.Senses order.
func Profiles() []Profile {
	return []Profile{
		VisionProfile(),
		HearingProfile(),
		TouchProfile(),
		SmellProfile(),
		TasteProfile(),
	}
}

func VisionProfile() Profile {
	return Profile{
		Sense:    model.Vision,
		Location: "visual field",
		Quality: func(text string, _ []Match) string {
			switch n := Objects.Count(text); {
			case n > 3:
				return "complex scene"
			case n > 1:
				return "moderate detail"
			default:
				return "simple scene"
			}
		},
		Intensity: func(text string, _ []Match) float64 {
			n := Colors.Count(text) + Shapes.Count(text) + Objects.Count(text)
			return float64(n) / 10.0
		},
	}
}

func HearingProfile() Profile {
	return Profile{
		Sense:     model.Hearing,
		Location:  "auditory field",
		Tables:    []Table{SoundLevels, Frequencies},
		Quality:   suffixed(1, " frequency"),
		Intensity: byLevel(0, map[string]float64{"loud": 0.9, "moderate": 0.5, "quiet": 0.2}, DefaultIntensity),
	}
}

func TouchProfile() Profile {
	return Profile{
		Sense:    model.Touch,
		Location: "tactile receptors",
		Tables:   []Table{Textures, Temperatures},
		Quality:  joined(" "),
		Intensity: byModifier([]Modifier{
			{Keyword: "pressure", Intensity: 0.8},
			{Keyword: "gentle", Intensity: 0.3},
		}, DefaultIntensity),
	}
}

func SmellProfile() Profile {
	return Profile{
		Sense:     model.Smell,
		Location:  "olfactory receptors",
		Tables:    []Table{Scents},
		Quality:   categoryOf(0),
		Intensity: byLevel(0, map[string]float64{"strong": 0.9, "pleasant": 0.7, "unpleasant": 0.6}, DefaultIntensity),
	}
}

func TasteProfile() Profile {
	return Profile{
		Sense:    model.Taste,
		Location: "taste buds",
		Tables:   []Table{Tastes},
		Quality:  categoryOf(0),
		Intensity: whenMatched(0, []Modifier{
			{Keyword: "strong", Intensity: 0.9},
			{Keyword: "mild", Intensity: 0.3},
		}, 0.6, DefaultIntensity),
	}
}
