// Package care carries the static plant-care reference shown in the Care
// Guide view.
package care

// FAQ is one question/answer pair, with an optional extra tip.
type FAQ struct {
	Question string
	Answer   string
	Tip      string
}

// Problem describes a common symptom with likely causes and a fix.
type Problem struct {
	Symptom  string
	Causes   []string
	Solution string
}

// SeasonTips groups advice by season, in calendar order.
type SeasonTips struct {
	Season string
	Tips   []string
}

var FAQs = []FAQ{
	{
		Question: "How often should I water my plants?",
		Answer:   "Watering frequency depends on the plant type, pot size, and environment. Most houseplants need watering when the top 1-2 inches of soil feels dry. Succulents prefer drying out completely between waterings.",
		Tip:      "Use the finger test: stick your finger in the soil up to the second knuckle. If it feels dry, it's time to water.",
	},
	{
		Question: "Why are my plant's leaves turning yellow?",
		Answer:   "Yellow leaves can indicate overwatering, underwatering, nutrient deficiency, or natural aging. Check your watering habits first - overwatering is the most common cause.",
		Tip:      "Bottom leaves yellowing naturally is often just the plant shedding old growth.",
	},
	{
		Question: "What's the best location for my plant?",
		Answer:   "Most houseplants thrive in bright, indirect light near east or west-facing windows. Low-light plants like snake plants can tolerate north-facing windows or interior spaces.",
		Tip:      "Rotate your plant 90 degrees weekly to ensure even growth towards the light.",
	},
	{
		Question: "How do I know if my plant needs repotting?",
		Answer:   "Signs include roots growing through drainage holes, water running straight through, slowed growth, or the plant becoming top-heavy. Most plants need repotting every 12-18 months.",
		Tip:      "Spring is the best time to repot as plants enter their active growth phase.",
	},
	{
		Question: "How can I increase humidity for tropical plants?",
		Answer:   "Group plants together, use a pebble tray with water, mist leaves in the morning, or use a humidifier. Bathrooms often have naturally higher humidity.",
		Tip:      "Avoid misting plants with fuzzy leaves like African violets as it can cause spotting.",
	},
}

var Problems = []Problem{
	{
		Symptom:  "Brown leaf tips",
		Causes:   []string{"Low humidity", "Over-fertilization", "Tap water chemicals (fluoride/chlorine)", "Underwatering"},
		Solution: "Use distilled water, increase humidity, flush soil monthly",
	},
	{
		Symptom:  "Drooping leaves",
		Causes:   []string{"Underwatering", "Overwatering", "Root rot", "Temperature stress"},
		Solution: "Check soil moisture, inspect roots, adjust watering schedule",
	},
	{
		Symptom:  "Small new leaves",
		Causes:   []string{"Insufficient light", "Nutrient deficiency", "Root-bound plant"},
		Solution: "Move to brighter location, fertilize, or repot",
	},
}

var Seasonal = []SeasonTips{
	{Season: "Spring", Tips: []string{
		"Begin regular fertilizing as growth resumes",
		"Increase watering frequency",
		"Start pest prevention measures",
		"Prune winter damage",
	}},
	{Season: "Summer", Tips: []string{
		"Water more frequently in heat",
		"Provide shade for sensitive plants",
		"Watch for pests like spider mites",
		"Rotate plants for even growth",
	}},
	{Season: "Fall", Tips: []string{
		"Reduce fertilizing",
		"Prepare plants for lower light levels",
		"Bring outdoor plants inside before frost",
		"Check for pests before bringing plants indoors",
	}},
	{Season: "Winter", Tips: []string{
		"Water less frequently",
		"Stop fertilizing most plants",
		"Increase humidity",
		"Dust leaves to maximize light absorption",
	}},
}
