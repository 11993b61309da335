package trends

import (
	"context"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/topics"
)

var topicBank = map[domain.Category][]string{
	domain.CategoryWorld: {
		"Global climate summit reaches new emissions agreement",
		"International trade talks resume after months of tension",
		"Humanitarian aid efforts expand in conflict regions",
		"Elections reshape political landscape across Europe",
		"United Nations debates new framework for ocean protection",
		"Diplomatic efforts intensify to ease regional tensions",
	},
	domain.CategoryTechnology: {
		"Artificial intelligence tools reshape everyday work",
		"Quantum computing research reaches new milestone",
		"Cybersecurity threats push companies to rethink defenses",
		"Electric vehicle battery technology keeps improving",
		"5G networks expand to rural communities",
		"Open source software gains ground in government",
	},
	domain.CategoryHealth: {
		"New research links sleep quality to heart health",
		"Hospitals adopt digital tools to cut waiting times",
		"Mental health services see rising demand among young adults",
		"Breakthrough therapy shows promise in cancer trials",
		"Nutrition experts revisit guidance on processed foods",
		"Vaccination campaigns expand ahead of flu season",
	},
	domain.CategoryBusiness: {
		"Central banks weigh next steps on interest rates",
		"Small businesses adapt to shifting consumer habits",
		"Global supply chains adjust to new trade rules",
		"Remote work reshapes commercial property markets",
		"Startups attract record investment in clean energy",
		"Retailers prepare for a competitive holiday season",
	},
	domain.CategoryEntertainment: {
		"Streaming platforms compete for exclusive releases",
		"Film festival season spotlights independent directors",
		"Music industry embraces new ways to reach fans",
		"Video game studios bet on cross platform play",
		"Television dramas draw record audiences this season",
		"Live concerts return with ambitious world tours",
	},
	domain.CategoryScience: {
		"Space telescope captures detailed images of distant galaxies",
		"Researchers report progress on fusion energy experiments",
		"Ocean scientists track rapid changes in coral reefs",
		"New fossil discovery sheds light on early mammals",
		"Gene editing research opens new paths for medicine",
		"Climate scientists refine models of global warming",
	},
	domain.CategoryLifestyle: {
		"Urban gardening grows in popularity among city dwellers",
		"Travelers seek slower and more sustainable trips",
		"Home fitness routines evolve beyond the gym",
		"Minimalist living attracts a new generation",
		"Plant based cooking moves into the mainstream",
		"Wellness retreats focus on digital detox",
	},
	domain.CategoryCelebrities: {
		"Award season brings surprise nominations for rising stars",
		"Celebrity philanthropy projects gain public attention",
		"Famous musicians announce reunion tour dates",
		"Hollywood actors speak out on industry changes",
		"Star athletes expand into fashion and media ventures",
		"Celebrity memoirs top bestseller lists this month",
	},
}

// Predefined serves a fixed topic bank and never comes back empty.
type Predefined struct{}

var _ topics.Source = Predefined{}

// NewPredefined returns the built-in topic bank source.
func NewPredefined() Predefined {
	return Predefined{}
}

// Name identifies the source inside the registry.
func (Predefined) Name() string {
	return "predefined"
}

// Topics returns the bank for category, or the world bank for unknown ones.
func (Predefined) Topics(_ context.Context, category domain.Category) ([]string, error) {
	bank, ok := topicBank[category]
	if !ok {
		bank = topicBank[domain.CategoryWorld]
	}
	out := make([]string, len(bank))
	copy(out, bank)
	return out, nil
}
