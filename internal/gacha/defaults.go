package gacha

// DefaultConfig mirrors configs/games/default.yaml: 2.5% / 18.5% / 79% with
// ten items per tier and 200 / 10 pity.
func DefaultConfig() Config {
	return Config{
		Tier3Pity: DefaultTier3Pity,
		Tier2Pity: DefaultTier2Pity,
		Tiers: map[RarityTier]TierPool{
			Tier3: {Probability: 0.025, Items: names(
				"Aru", "Shiroko", "Hifumi", "Yuuka", "Hoshino",
				"Chise", "Asuna", "Karin", "Mutsuki", "Serika",
			)},
			Tier2: {Probability: 0.185, Items: names(
				"Kotama", "Midori", "Akane", "Momoi", "Nonomi",
				"Chinatsu", "Kayoko", "Suzumi", "Hasumi", "Izumi",
			)},
			Tier1: {Probability: 0.79, Items: names(
				"Alice", "Koharu", "Michiru", "Momoka", "Fuuka",
				"Juri", "Haruka", "Yoshimi", "Airi", "Kazusa",
			)},
		},
	}
}

func names(ns ...string) []Item {
	items := make([]Item, len(ns))
	for i, n := range ns {
		items[i] = Item{Name: n}
	}
	return items
}
