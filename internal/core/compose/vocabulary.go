package compose

import "github.com/louisbranch/loreforge/internal/core/lore"

// Vocabulary holds the fixed tables descriptive clauses are drawn from.
//
// Formats take the subject name first and the drawn words after it.
type Vocabulary struct {
	Roles  []string
	Traits []string
	// Hooks are whole sentences and may embed the name placeholder.
	Hooks  []string
	Scenes []string

	RoleFormat  string // name, role
	TraitFormat string // name, trait, trait
	SceneFormat string // name, scene
}

// CharacterVocabulary describes people.
var CharacterVocabulary = Vocabulary{
	Roles: []string{
		"a wandering cartographer", "a disgraced duelist", "a temple archivist",
		"a retired smuggler", "a border warden", "a travelling bard",
		"a hedge witch", "a guild negotiator", "a lighthouse keeper",
		"an exiled courtier", "a caravan scout", "a taciturn blacksmith",
		"a street healer", "a relic hunter", "a river pilot",
	},
	Traits: []string{
		"patient", "reckless", "soft-spoken", "stubborn", "generous",
		"secretive", "loyal", "restless", "meticulous", "superstitious",
		"charming", "grim", "curious", "proud", "weary",
	},
	Hooks: []string{
		"{name} still carries a letter that was never delivered.",
		"Someone in the capital would pay dearly to see {name} silenced.",
		"{name} owes a favour to a spirit that has started to collect.",
		"An old map in {name}'s keeping shows a road no one remembers.",
		"{name} swore an oath at a shrine that has since burned down.",
		"A sibling {name} believed dead was seen at the harbor last spring.",
		"{name} knows the true name of the storm that sank the fleet.",
		"The guild still lists {name} as a founding member, against their wishes.",
	},
	Scenes: []string{
		"at the crossroads inn after dark", "among the stalls of the night market",
		"on the walls of the old citadel", "in the reading room of the abbey",
		"beside the frozen lake", "on the deck of a river barge",
		"in the ruins beneath the city", "at the edge of the whispering forest",
	},
	RoleFormat:  "%s is %s.",
	TraitFormat: "Those who know %s call them %s and %s.",
	SceneFormat: "%s is most often found %s.",
}

// LocationVocabulary describes places.
var LocationVocabulary = Vocabulary{
	Roles: []string{
		"a fortified harbor", "a hollow mountain shrine", "a drowned market town",
		"a frontier keep", "a salt-crusted oasis", "a forest sanctuary",
		"a trading post on a glacier", "a city of towering spires",
	},
	Traits: []string{
		"crimson", "forgotten", "shattered", "silent", "golden",
		"frozen", "verdant", "ashen", "hollow", "windswept",
	},
	Hooks: []string{
		"Travellers to {name} speak of bells ringing beneath the water.",
		"The founders of {name} sealed something in its deepest cellar.",
		"Every winter one road into {name} quietly disappears.",
		"The ruling council of {name} has not been seen in public for a decade.",
		"Pilgrims leave iron nails at the gates of {name} and never explain why.",
	},
	Scenes: []string{
		"under a sky of drifting ash", "where the river splits in three",
		"on the last cliff before the sea", "deep inside the jade valley",
		"at the foot of a dead volcano", "between two warring kingdoms",
	},
	RoleFormat:  "%s is %s.",
	TraitFormat: "Visitors remember %s as %s and %s.",
	SceneFormat: "%s lies %s.",
}

// TitleVocabulary describes honorifics and ranks.
var TitleVocabulary = Vocabulary{
	Roles: []string{
		"an honorific granted by the old crown", "a rank held by river wardens",
		"a title passed between rival houses", "a sacred office of the temple",
		"a mocking nickname that became official",
	},
	Traits: []string{
		"ancient", "coveted", "cursed", "ceremonial", "feared",
		"hereditary", "contested", "forgotten",
	},
	Hooks: []string{
		"The last bearer of {name} vanished on the night of their investiture.",
		"Two claimants currently insist on the title {name}.",
		"Whoever holds {name} may not refuse a stranger's request.",
		"The charter defining {name} was rewritten in secret.",
	},
	Scenes: []string{
		"during the spring coronation", "at every funeral of the royal line",
		"in the courts of the southern provinces", "whenever the harvest fails",
	},
	RoleFormat:  "%s is %s.",
	TraitFormat: "The title %s is %s and %s.",
	SceneFormat: "%s is invoked %s.",
}

// ConceptVocabulary describes ideas, customs and phenomena.
var ConceptVocabulary = Vocabulary{
	Roles: []string{
		"a custom older than the empire", "a forbidden school of magic",
		"a festival of lanterns and masks", "a heresy whispered among sailors",
		"a law of hospitality", "a phenomenon scholars cannot explain",
	},
	Traits: []string{
		"misunderstood", "sacred", "dangerous", "fading", "widespread",
		"secret", "beloved", "ruinous",
	},
	Hooks: []string{
		"Practitioners of {name} can always recognize one another.",
		"{name} was outlawed after the fall of the eastern tower.",
		"Every generation rediscovers {name} and forgets why it was abandoned.",
		"The old texts describing {name} disagree on a single crucial word.",
	},
	Scenes: []string{
		"in remote mountain villages", "aboard long-haul merchant ships",
		"in the scriptoria of the high temple", "among nomadic clans of the steppe",
	},
	RoleFormat:  "%s is %s.",
	TraitFormat: "Most consider %s %s and %s.",
	SceneFormat: "%s survives %s.",
}

// DefaultVocabularies maps each kind to its vocabulary.
var DefaultVocabularies = map[lore.Kind]Vocabulary{
	lore.KindCharacter: CharacterVocabulary,
	lore.KindLocation:  LocationVocabulary,
	lore.KindTitle:     TitleVocabulary,
	lore.KindConcept:   ConceptVocabulary,
}
