package game

import (
	"math/rand"
	"time"
)

// PromptSource supplies the secret word for a round.
type PromptSource interface {
	RandomPrompt() DrawingPrompt
}

type promptCategory struct {
	name  string
	words []string
}

var promptCatalog = []promptCategory{
	{
		name: "Animals",
		words: []string{
			"Cat", "Dog", "Elephant", "Lion", "Tiger", "Bear", "Monkey", "Penguin",
			"Dolphin", "Shark", "Butterfly", "Bee", "Rabbit", "Horse", "Cow", "Pig",
			"Chicken", "Duck", "Owl", "Eagle", "Snake", "Turtle", "Fish", "Whale",
		},
	},
	{
		name: "Food",
		words: []string{
			"Pizza", "Burger", "Ice Cream", "Cake", "Apple", "Banana", "Sandwich",
			"Taco", "Sushi", "Pasta", "Cookie", "Donut", "Hot Dog", "French Fries",
			"Chocolate", "Popcorn", "Pancake", "Waffle", "Coffee", "Milkshake",
		},
	},
	{
		name: "Objects",
		words: []string{
			"Phone", "Computer", "Car", "Bicycle", "Book", "Camera", "Umbrella",
			"Clock", "Lamp", "Chair", "Table", "Bed", "Door", "Window", "Key",
			"Sword", "Shield", "Crown", "Ring", "Guitar", "Piano", "Drum",
		},
	},
	{
		name: "Nature",
		words: []string{
			"Tree", "Flower", "Sun", "Moon", "Star", "Cloud", "Rainbow", "Mountain",
			"Ocean", "River", "Forest", "Desert", "Island", "Volcano", "Snowflake",
			"Leaf", "Rock", "Cactus", "Wave", "Sunset", "Aurora",
		},
	},
	{
		name: "People & Actions",
		words: []string{
			"Dancing", "Singing", "Running", "Jumping", "Swimming", "Flying",
			"Cooking", "Reading", "Sleeping", "Laughing", "Crying", "Waving",
			"Clapping", "Hugging", "Kicking", "Throwing", "Catching", "Falling",
		},
	},
	{
		name: "Places",
		words: []string{
			"School", "Hospital", "Library", "Beach", "Park", "Zoo", "Museum",
			"Restaurant", "Airport", "Train Station", "Castle", "Bridge", "Tower",
			"Temple", "Stadium", "Theater", "Store", "House", "Apartment",
		},
	},
	{
		name: "Fantasy",
		words: []string{
			"Dragon", "Unicorn", "Wizard", "Fairy", "Knight", "Princess", "Castle",
			"Magic Wand", "Crystal Ball", "Phoenix", "Mermaid", "Robot", "Alien",
			"Ghost", "Vampire", "Werewolf", "Elf", "Dwarf", "Giant",
		},
	},
	{
		name: "Sports",
		words: []string{
			"Basketball", "Football", "Soccer", "Tennis", "Baseball", "Golf",
			"Swimming", "Running", "Cycling", "Skiing", "Surfing", "Skateboarding",
			"Volleyball", "Hockey", "Boxing", "Wrestling",
		},
	},
}

// CatalogSource draws prompts from the built-in word catalog, picking a
// category uniformly at random and then a word within it.
type CatalogSource struct {
	rng *rand.Rand
}

func NewCatalogSource() *CatalogSource {
	return &CatalogSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededCatalogSource fixes the random sequence, for tests.
func NewSeededCatalogSource(seed int64) *CatalogSource {
	return &CatalogSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *CatalogSource) RandomPrompt() DrawingPrompt {
	category := promptCatalog[s.rng.Intn(len(promptCatalog))]
	word := category.words[s.rng.Intn(len(category.words))]
	return DrawingPrompt{Word: word, Category: category.name}
}

// CatalogCategories lists the category names of the built-in catalog.
func CatalogCategories() []string {
	names := make([]string, 0, len(promptCatalog))
	for _, category := range promptCatalog {
		names = append(names, category.name)
	}
	return names
}
